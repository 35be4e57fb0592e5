package summary

import (
	"context"
	"testing"

	"cargoproxy/internal/model"
	"cargoproxy/internal/store"
)

func TestSummarizeOrderAndCounts(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	put := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	put(s.Customers().Put(ctx, "KFC", model.Customer{Name: "KFC"}))
	put(s.Customers().Put(ctx, "TGB", model.Customer{Name: "TGB"}))
	put(s.Operators().Put(ctx, "J. Roca", model.Operator{Name: "J. Roca"}))
	put(s.Vehicles().Put(ctx, "truck-1", model.Vehicle{VIN: "truck-1", Status: "WARNING"}))
	put(s.Vehicles().Put(ctx, "truck-2", model.Vehicle{VIN: "truck-2", Status: "Error"}))
	put(s.Vehicles().Put(ctx, "truck-3", model.Vehicle{VIN: "truck-3"}))
	put(s.Shipments().Put(ctx, "pkg-1/truck-1", model.Shipment{Status: "warning"}))
	put(s.Shipments().Put(ctx, "pkg-2/truck-1", model.Shipment{Status: "warning"}))
	put(s.Shipments().Put(ctx, "pkg-3/truck-1", model.Shipment{Status: "errors"}))
	for name, u := range map[string]float64{"low": 0.2, "edge": 0.5, "warn": 0.6, "top": 0.7, "high": 1.4} {
		put(s.Facilities().Put(ctx, name, model.Facility{Name: name, Utilization: u}))
	}

	got, err := New(s).Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []model.Summary{
		{Name: "clientes", Title: "Clientes", Count: 2},
		{Name: "paquetes", Title: "Paquetes", Count: 3, WarningCount: 2},
		{Name: "vehículos", Title: "Vehículos", Count: 3, WarningCount: 1, ErrorCount: 1},
		{Name: "operarios", Title: "Operarios", Count: 1},
		{Name: "plantas", Title: "Plantas", Count: 5, WarningCount: 1, ErrorCount: 1},
		{Name: "falso", Title: "Directores", Count: 23, WarningCount: 4, ErrorCount: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("summary %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummarizeEmptyStore(t *testing.T) {
	got, err := New(store.NewMemory()).Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("want 6 entries, got %d", len(got))
	}
	for _, s := range got[:5] {
		if s.Count != 0 || s.WarningCount != 0 || s.ErrorCount != 0 {
			t.Errorf("%s should be empty: %+v", s.Name, s)
		}
	}
	if got[5] != Directors {
		t.Fatalf("last entry: %+v", got[5])
	}
}

func TestClassifyFacilitiesBoundaries(t *testing.T) {
	cases := []struct {
		u        float64
		warn, er int64
	}{
		{0, 0, 1},
		{0.4999, 0, 1},
		{0.5, 0, 0},
		{0.5001, 1, 0},
		{0.6999, 1, 0},
		{0.7, 0, 0},
		{2.5, 0, 0},
	}
	for _, tc := range cases {
		w, e := ClassifyFacilities(map[string]model.Facility{"f": {Utilization: tc.u}})
		if w != tc.warn || e != tc.er {
			t.Errorf("u=%v: got warn=%d err=%d, want %d/%d", tc.u, w, e, tc.warn, tc.er)
		}
	}
}

func TestCountStatuses(t *testing.T) {
	w, e := CountStatuses([]string{"warning", "Warning", "ERROR", "ok", "", "warnings"})
	if w != 2 || e != 1 {
		t.Fatalf("got %d/%d", w, e)
	}
}
