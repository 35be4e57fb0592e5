// Package summary computes the dashboard counters over the cache.
package summary

import (
	"context"
	"fmt"
	"strings"

	"cargoproxy/internal/model"
	"cargoproxy/internal/obs"
	"cargoproxy/internal/store"
)

// Facility utilization bands. Both bounds are exclusive, so a facility at
// exactly WarningFloor is neither warning nor error.
const (
	WarningFloor   = 0.5
	WarningCeiling = 0.7
)

// Directors is a fixed entry for a class that is not held in the cache.
var Directors = model.Summary{Name: "falso", Title: "Directores", Count: 23, WarningCount: 4, ErrorCount: 1}

// Aggregator reads the cache and never writes to it.
type Aggregator struct {
	store store.Store
}

func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Summarize returns customers, packages, vehicles, operators, facilities
// and the directors fixture, in that order.
func (a *Aggregator) Summarize(ctx context.Context) (_ []model.Summary, err error) {
	defer obs.Time(ctx, "summary.Summarize")(&err)

	customers, err := a.store.Customers().Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize customers: %w", err)
	}
	operators, err := a.store.Operators().Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize operators: %w", err)
	}
	shipments, err := store.All(ctx, a.store.Shipments())
	if err != nil {
		return nil, fmt.Errorf("summarize shipments: %w", err)
	}
	vehicles, err := store.All(ctx, a.store.Vehicles())
	if err != nil {
		return nil, fmt.Errorf("summarize vehicles: %w", err)
	}
	facilities, err := store.All(ctx, a.store.Facilities())
	if err != nil {
		return nil, fmt.Errorf("summarize facilities: %w", err)
	}

	pkgs := model.Summary{Name: "paquetes", Title: "Paquetes", Count: int64(len(shipments))}
	pkgs.WarningCount, pkgs.ErrorCount = CountStatuses(shipmentStatuses(shipments))

	veh := model.Summary{Name: "vehículos", Title: "Vehículos", Count: int64(len(vehicles))}
	veh.WarningCount, veh.ErrorCount = CountStatuses(vehicleStatuses(vehicles))

	plants := model.Summary{Name: "plantas", Title: "Plantas", Count: int64(len(facilities))}
	plants.WarningCount, plants.ErrorCount = ClassifyFacilities(facilities)

	return []model.Summary{
		{Name: "clientes", Title: "Clientes", Count: int64(len(customers))},
		pkgs,
		veh,
		{Name: "operarios", Title: "Operarios", Count: int64(len(operators))},
		plants,
		Directors,
	}, nil
}

// CountStatuses counts "warning" and "error" statuses, ignoring case.
func CountStatuses(statuses []string) (warnings, errs int64) {
	for _, s := range statuses {
		switch {
		case strings.EqualFold(s, "warning"):
			warnings++
		case strings.EqualFold(s, "error"):
			errs++
		}
	}
	return warnings, errs
}

// ClassifyFacilities counts facilities in the warning band (0.5, 0.7) and
// below it (< 0.5).
func ClassifyFacilities(facilities map[string]model.Facility) (warnings, errs int64) {
	for _, f := range facilities {
		u := f.Utilization
		if u > WarningFloor && u < WarningCeiling {
			warnings++
		}
		if u < WarningFloor {
			errs++
		}
	}
	return warnings, errs
}

func shipmentStatuses(m map[string]model.Shipment) []string {
	out := make([]string, 0, len(m))
	for _, s := range m {
		out = append(out, s.Status)
	}
	return out
}

func vehicleStatuses(m map[string]model.Vehicle) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v.Status)
	}
	return out
}
