package store

import (
    "context"
    "errors"
    "fmt"
    "sort"

    "cargoproxy/internal/model"
)

// Bucket names, shared by every backend.
const (
    BucketVehicles   = "vehicles"
    BucketCustomers  = "customers"
    BucketFacilities = "facilities"
    BucketOperators  = "operators"
    BucketShipments  = "shipments"
)

// Bucket is one key -> entity mapping in the shared cache.
type Bucket[T any] interface {
    // Get returns ErrNotFound when key is absent.
    Get(ctx context.Context, key string) (T, error)
    Put(ctx context.Context, key string, v T) error
    Clear(ctx context.Context) error
    Keys(ctx context.Context) ([]string, error)
}

// Store is the cache interface used by the generator, calculator, aggregator
// and API server. Individual operations are atomic; nothing spans them.
type Store interface {
    Vehicles() Bucket[model.Vehicle]
    Customers() Bucket[model.Customer]
    Facilities() Bucket[model.Facility]
    Operators() Bucket[model.Operator]
    Shipments() Bucket[model.Shipment]
}

var ErrNotFound = errors.New("not found")

// All loads every entity of a bucket. Keys deleted between listing and
// fetching are skipped.
func All[T any](ctx context.Context, b Bucket[T]) (map[string]T, error) {
    keys, err := b.Keys(ctx)
    if err != nil { return nil, fmt.Errorf("list keys: %w", err) }
    out := make(map[string]T, len(keys))
    for _, k := range keys {
        v, err := b.Get(ctx, k)
        if errors.Is(err, ErrNotFound) { continue }
        if err != nil { return nil, fmt.Errorf("get %q: %w", k, err) }
        out[k] = v
    }
    return out, nil
}

// ClearAll empties the five buckets in a fixed order. It stops at the first
// failure, leaving later buckets untouched.
func ClearAll(ctx context.Context, s Store) error {
    steps := []struct {
        name  string
        clear func(context.Context) error
    }{
        {BucketFacilities, s.Facilities().Clear},
        {BucketVehicles, s.Vehicles().Clear},
        {BucketCustomers, s.Customers().Clear},
        {BucketOperators, s.Operators().Clear},
        {BucketShipments, s.Shipments().Clear},
    }
    for _, st := range steps {
        if err := st.clear(ctx); err != nil { return fmt.Errorf("clear %s: %w", st.name, err) }
    }
    return nil
}

func sortedKeys[T any](m map[string]T) []string {
    out := make([]string, 0, len(m))
    for k := range m { out = append(out, k) }
    sort.Strings(out)
    return out
}
