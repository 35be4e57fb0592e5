package api

import (
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    redis "github.com/redis/go-redis/v9"
)

func exerciseBroker(t *testing.T, b EventBroker) {
    t.Helper()
    ch := b.Subscribe("utils")
    other := b.Subscribe("elsewhere")

    evt := SSEEvent{Type: "vehicle.updated", Data: map[string]any{"id": "truck-1"}}
    b.Publish("utils", evt)

    select {
    case got := <-ch:
        if got.Type != evt.Type { t.Fatalf("got type %s, want %s", got.Type, evt.Type) }
        if got.Data["id"] != "truck-1" { t.Fatalf("bad payload: %+v", got.Data) }
    case <-time.After(time.Second):
        t.Fatal("timeout waiting for event")
    }
    select {
    case got := <-other:
        t.Fatalf("event leaked to another topic: %+v", got)
    case <-time.After(50 * time.Millisecond):
    }

    b.Unsubscribe("utils", ch)
    b.Unsubscribe("elsewhere", other)
    select {
    case _, ok := <-ch:
        if ok { t.Fatal("channel should be closed after unsubscribe") }
    case <-time.After(time.Second):
        t.Fatal("channel not closed after unsubscribe")
    }
}

func TestBrokerPublishSubscribe(t *testing.T) {
    b := NewBroker()
    exerciseBroker(t, b)
    // a second unsubscribe is a no-op
    ch := b.Subscribe("utils")
    b.Unsubscribe("utils", ch)
    b.Unsubscribe("utils", ch)
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
    b := NewBroker()
    ch := b.Subscribe("utils")
    defer b.Unsubscribe("utils", ch)
    done := make(chan struct{})
    go func() {
        for i := 0; i < 100; i++ { b.Publish("utils", SSEEvent{Type: "x"}) }
        close(done)
    }()
    select {
    case <-done:
    case <-time.After(time.Second):
        t.Fatal("Publish blocked on a full subscriber")
    }
    if n := len(ch); n != cap(ch) { t.Fatalf("buffered %d events, want %d", n, cap(ch)) }
}

func TestRedisBrokerPublishSubscribe(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    b := NewRedisBrokerClient(rdb)
    t.Cleanup(func() { _ = b.Close() })
    exerciseBroker(t, b)
}

func TestRedisBrokerChannelName(t *testing.T) {
    mr := miniredis.RunT(t)
    b := NewRedisBrokerClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
    t.Cleanup(func() { _ = b.Close() })
    ch := b.Subscribe(eventsTopic)
    defer b.Unsubscribe(eventsTopic, ch)
    if got := mr.PubSubNumSub("utils:events"); got["utils:events"] != 1 {
        t.Fatalf("subscribers on utils:events = %v", got)
    }
}

func TestNewRedisBrokerRejectsBadURL(t *testing.T) {
    if _, err := NewRedisBroker("not-a-url"); err == nil { t.Fatal("expected parse error") }
}
