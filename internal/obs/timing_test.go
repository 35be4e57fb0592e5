package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc")

	err := errors.New("boom")
	Time(ctx, "op.fail")(&err)
	Time(ctx, "op.ok")(nil)

	out := buf.String()
	if !strings.Contains(out, "req_id=abc op=op.fail") || !strings.Contains(out, "err=boom") {
		t.Fatalf("missing failure line: %q", out)
	}
	if !strings.Contains(out, "op=op.ok dur=") {
		t.Fatalf("missing success line: %q", out)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("want empty id, got %q", got)
	}
}
