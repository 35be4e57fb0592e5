package utilization

import (
	"context"
	"math"
	"testing"

	"cargoproxy/internal/model"
	"cargoproxy/internal/store"
)

func fac(name string) model.Facility { return model.Facility{ID: name, Name: name} }

func seedFacilities(t *testing.T, s store.Store, names ...string) {
	t.Helper()
	for _, n := range names {
		f := fac(n)
		f.Utilization = 9 // stale value must be overwritten
		if err := s.Facilities().Put(context.Background(), n, f); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRecomputeDistributesScale(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedFacilities(t, s, "A", "B", "C", "D", "Idle")
	routes := map[string][]string{
		"pkg-1/truck-1": {"A", "B", "C"},
		"pkg-2/truck-1": {"A", "B", "D"},
	}
	for k, r := range routes {
		sh := model.Shipment{SensorID: k}
		for _, n := range r {
			sh.Route = append(sh.Route, fac(n))
		}
		if err := s.Shipments().Put(ctx, k, sh); err != nil {
			t.Fatal(err)
		}
	}

	if err := New(s).Recompute(ctx); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	want := map[string]float64{"A": 2.5 * 2 / 6, "B": 2.5 * 2 / 6, "C": 2.5 / 6, "D": 2.5 / 6, "Idle": 0}
	sum := 0.0
	for name, w := range want {
		f, err := s.Facilities().Get(ctx, name)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(f.Utilization-w) > 1e-9 {
			t.Errorf("%s: got %v, want %v", name, f.Utilization, w)
		}
		sum += f.Utilization
	}
	if math.Abs(sum-Scale) > 1e-9 {
		t.Fatalf("sum of utilization = %v, want %v", sum, Scale)
	}
}

func TestRecomputeWithoutShipments(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedFacilities(t, s, "A", "B")
	if err := New(s).Recompute(ctx); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	for _, n := range []string{"A", "B"} {
		f, _ := s.Facilities().Get(ctx, n)
		if f.Utilization != 0 {
			t.Fatalf("%s: want 0, got %v", n, f.Utilization)
		}
	}
}

func TestTallyCountsEverySlot(t *testing.T) {
	shipments := map[string]model.Shipment{
		"x": {Route: []model.Facility{fac("A"), fac("A"), fac("B")}},
		"y": {Route: []model.Facility{fac("B"), fac("C"), fac("A")}},
	}
	counts, total := Tally(shipments)
	if total != 6 {
		t.Fatalf("total: got %d", total)
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum != total || counts["A"] != 3 || counts["B"] != 2 || counts["C"] != 1 {
		t.Fatalf("counts: %v", counts)
	}
}

func TestRatio(t *testing.T) {
	if Ratio(0, 10) != 0 || Ratio(3, 0) != 0 {
		t.Fatal("zero count or total must give 0")
	}
	if got := Ratio(10, 10); got != Scale {
		t.Fatalf("full share: got %v", got)
	}
}
