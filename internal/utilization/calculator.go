// Package utilization derives facility load from shipment routes.
package utilization

import (
	"context"
	"fmt"

	"cargoproxy/internal/model"
	"cargoproxy/internal/obs"
	"cargoproxy/internal/store"
)

// Scale maps a facility's share of all route slots onto [0, Scale].
const Scale = 2.5

// Calculator rewrites Facility.Utilization for every facility in a store.
type Calculator struct {
	store store.Store
}

func New(s store.Store) *Calculator {
	return &Calculator{store: s}
}

// Tally counts how often each facility name appears in the shipments'
// routes, and the total number of route slots.
func Tally(shipments map[string]model.Shipment) (counts map[string]int, total int) {
	counts = map[string]int{}
	for _, s := range shipments {
		for _, f := range s.Route {
			counts[f.Name]++
			total++
		}
	}
	return counts, total
}

// Ratio is Scale * count / total, and 0 when either is 0.
func Ratio(count, total int) float64 {
	if count == 0 || total == 0 {
		return 0
	}
	return Scale * (float64(count) / float64(total))
}

// Recompute reads all shipments and facilities and writes every facility
// back with its utilization set from the current routes.
func (c *Calculator) Recompute(ctx context.Context) (err error) {
	defer obs.Time(ctx, "utilization.Recompute")(&err)

	shipments, err := store.All(ctx, c.store.Shipments())
	if err != nil {
		return fmt.Errorf("recompute utilization: shipments: %w", err)
	}
	counts, total := Tally(shipments)

	facilities := c.store.Facilities()
	all, err := store.All(ctx, facilities)
	if err != nil {
		return fmt.Errorf("recompute utilization: facilities: %w", err)
	}
	for key, f := range all {
		f.Utilization = Ratio(counts[f.Name], total)
		if err := facilities.Put(ctx, key, f); err != nil {
			return fmt.Errorf("recompute utilization: put facility %q: %w", key, err)
		}
	}
	return nil
}
