// Package seed rebuilds the demo fleet: facilities, customers, operators,
// vehicles and their shipments, written into the shared cache.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"cargoproxy/internal/fixtures"
	"cargoproxy/internal/model"
	"cargoproxy/internal/obs"
	"cargoproxy/internal/store"
	"cargoproxy/internal/utilization"
)

const (
	MaxVehicles           = 10
	MaxPackagesPerVehicle = 20

	day = 24 * time.Hour
)

// placeholder coordinate given to every generated facility
var facilityLocation = model.LatLng{Lat: -80, Lng: 20}

func engineTelemetry() []model.Telemetry {
	return []model.Telemetry{
		{Unit: "°C", Max: 250, Min: 150, Label: "Temperatura motor", SensorID: "temp"},
		{Unit: "rpm", Max: 2200, Min: 500, Label: "RPM", SensorID: "rpm"},
		{Unit: "psi", Max: 80, Min: 30, Label: "Aceite", SensorID: "oilpress"},
	}
}

func ambientTelemetry() []model.Telemetry {
	return []model.Telemetry{
		{Unit: "°C", Max: 40, Min: 0, Label: "Temperatura", SensorID: "Ambiente"},
		{Unit: "%", Max: 100, Min: 0, Label: "Humedad", SensorID: "Humedad"},
		{Unit: "lm", Max: 400, Min: 100, Label: "Luz", SensorID: "Luz"},
		{Unit: "inHg", Max: 31, Min: 29, Label: "Presión", SensorID: "Presión"},
	}
}

// Generator repopulates a store from a fixture catalog.
type Generator struct {
	store       store.Store
	catalog     *fixtures.Catalog
	rnd         *rand.Rand
	now         func() time.Time
	extraIDs    []string
	utilization *utilization.Calculator
}

type Option func(*Generator)

// WithRand replaces the random source. The source is wrapped so a single
// Generator may be used by concurrent resets.
func WithRand(src rand.Source) Option {
	return func(g *Generator) { g.rnd = rand.New(&lockedSource{src: src}) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithExtraSensorIDs adds one shipment per id to every vehicle.
func WithExtraSensorIDs(ids []string) Option {
	return func(g *Generator) { g.extraIDs = append([]string(nil), ids...) }
}

func New(s store.Store, c *fixtures.Catalog, opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		store:       s,
		catalog:     c,
		rnd:         rand.New(&lockedSource{src: rand.NewPCG(seed, seed>>1|1)}),
		now:         time.Now,
		utilization: utilization.New(s),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Reset clears all five buckets, writes a fresh fleet and recomputes
// facility utilization. It is not atomic: a failure leaves whatever was
// written so far, and concurrent readers can observe intermediate states.
func (g *Generator) Reset(ctx context.Context) (err error) {
	defer obs.Time(ctx, "seed.Reset")(&err)

	if err := store.ClearAll(ctx, g.store); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	for _, name := range g.catalog.Companies {
		if err := g.store.Customers().Put(ctx, name, model.Customer{Name: name, Password: "password"}); err != nil {
			return fmt.Errorf("reset: put customer %q: %w", name, err)
		}
	}
	for _, name := range g.catalog.Operators {
		if err := g.store.Operators().Put(ctx, name, model.Operator{Name: name, Password: "password"}); err != nil {
			return fmt.Errorf("reset: put operator %q: %w", name, err)
		}
	}
	for _, name := range g.catalog.Facilities() {
		f := model.Facility{
			ID:       name,
			Name:     name,
			Location: facilityLocation,
			Capacity: g.rnd.Float64() * 1000,
		}
		if err := g.store.Facilities().Put(ctx, name, f); err != nil {
			return fmt.Errorf("reset: put facility %q: %w", name, err)
		}
	}

	for i := 1; i <= MaxVehicles; i++ {
		v, err := g.vehicle(ctx, fmt.Sprintf("truck-%d", i))
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		for j := 1; j <= MaxPackagesPerVehicle; j++ {
			desc := pickUniform(g.rnd, g.catalog.PackageDescriptions)
			if err := g.shipment(ctx, v, fmt.Sprintf("pkg-%d", j), desc); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		for _, id := range g.extraIDs {
			desc := pickUniform(g.rnd, g.catalog.PackageDescriptions) + " [" + id + "]"
			if err := g.shipment(ctx, v, id, desc); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
	}

	if err := g.utilization.Recompute(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

func (g *Generator) vehicle(ctx context.Context, vin string) (model.Vehicle, error) {
	v := model.Vehicle{VIN: vin, Type: pickUniform(g.rnd, g.catalog.VehicleTypes)}

	origin, err := g.facility(ctx, pickUniform(g.rnd, g.catalog.Origins))
	if err != nil {
		return v, fmt.Errorf("vehicle %s origin: %w", vin, err)
	}
	dest, err := g.facility(ctx, pickUniform(g.rnd, g.catalog.Destinations))
	if err != nil {
		return v, fmt.Errorf("vehicle %s destination: %w", vin, err)
	}
	v.Origin = origin
	v.Destination = dest
	v.Telemetry = engineTelemetry()
	v.ETA = g.now().Add(day + g.span(2*day))

	if err := g.store.Vehicles().Put(ctx, vin, v); err != nil {
		return v, fmt.Errorf("put vehicle %s: %w", vin, err)
	}
	return v, nil
}

func (g *Generator) shipment(ctx context.Context, v model.Vehicle, sensorID, desc string) error {
	key := sensorID + "/" + v.VIN

	origin, err := g.facility(ctx, pickUniform(g.rnd, g.catalog.Origins))
	if err != nil {
		return fmt.Errorf("shipment %s origin: %w", key, err)
	}
	dest, err := g.facility(ctx, pickUniform(g.rnd, g.catalog.Destinations))
	if err != nil {
		return fmt.Errorf("shipment %s destination: %w", key, err)
	}

	// the first owner draw is discarded; the shipment belongs to the second
	_ = pickUniform(g.rnd, g.catalog.Companies)
	now := g.now()
	etd := now.Add(-day - g.span(3*day))
	eta := now.Add(day + g.span(4*day))
	owner := pickUniform(g.rnd, g.catalog.Companies)
	cust, err := g.store.Customers().Get(ctx, owner)
	if err != nil {
		return fmt.Errorf("shipment %s customer %q: %w", key, owner, err)
	}

	s := model.Shipment{
		Customer:    cust,
		Name:        "Paquete " + key,
		Description: desc,
		SensorID:    sensorID,
		Route:       []model.Facility{origin, v.Destination, dest},
		ETD:         etd,
		ETA:         eta,
		Value:       g.rnd.Float64() * 2000,
		Vehicle:     v,
		Telemetry:   ambientTelemetry(),
	}
	if err := g.store.Shipments().Put(ctx, key, s); err != nil {
		return fmt.Errorf("put shipment %s: %w", key, err)
	}
	return nil
}

func (g *Generator) facility(ctx context.Context, name string) (model.Facility, error) {
	f, err := g.store.Facilities().Get(ctx, name)
	if err != nil {
		return f, fmt.Errorf("facility %q: %w", name, err)
	}
	return f, nil
}

// span returns a uniform duration in [0, max).
func (g *Generator) span(max time.Duration) time.Duration {
	return time.Duration(g.rnd.Float64() * float64(max))
}

// pickUniform returns a uniformly chosen element of list, which must be
// non-empty.
func pickUniform[T any](r *rand.Rand, list []T) T {
	return list[r.IntN(len(list))]
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}
