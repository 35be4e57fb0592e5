package store

import (
    "context"
    "sync"

    "cargoproxy/internal/model"
)

// Memory is a simple in-memory store used when no backend URL is set.
type Memory struct {
    vehicles   *memBucket[model.Vehicle]
    customers  *memBucket[model.Customer]
    facilities *memBucket[model.Facility]
    operators  *memBucket[model.Operator]
    shipments  *memBucket[model.Shipment]
}

func NewMemory() *Memory {
    return &Memory{
        vehicles: newMemBucket[model.Vehicle](),
        customers: newMemBucket[model.Customer](),
        facilities: newMemBucket[model.Facility](),
        operators: newMemBucket[model.Operator](),
        shipments: newMemBucket[model.Shipment](),
    }
}

func (m *Memory) Vehicles() Bucket[model.Vehicle]     { return m.vehicles }
func (m *Memory) Customers() Bucket[model.Customer]   { return m.customers }
func (m *Memory) Facilities() Bucket[model.Facility]  { return m.facilities }
func (m *Memory) Operators() Bucket[model.Operator]   { return m.operators }
func (m *Memory) Shipments() Bucket[model.Shipment]   { return m.shipments }

// memBucket is a mutex-guarded map. Values are stored as given; callers must
// not mutate slices after Put.
type memBucket[T any] struct {
    mu    sync.RWMutex
    items map[string]T
}

func newMemBucket[T any]() *memBucket[T] {
    return &memBucket[T]{items: map[string]T{}}
}

func (b *memBucket[T]) Get(ctx context.Context, key string) (T, error) {
    b.mu.RLock(); defer b.mu.RUnlock()
    v, ok := b.items[key]
    if !ok { var zero T; return zero, ErrNotFound }
    return v, nil
}

func (b *memBucket[T]) Put(ctx context.Context, key string, v T) error {
    b.mu.Lock(); defer b.mu.Unlock()
    b.items[key] = v
    return nil
}

func (b *memBucket[T]) Clear(ctx context.Context) error {
    b.mu.Lock(); defer b.mu.Unlock()
    b.items = map[string]T{}
    return nil
}

func (b *memBucket[T]) Keys(ctx context.Context) ([]string, error) {
    b.mu.RLock(); defer b.mu.RUnlock()
    return sortedKeys(b.items), nil
}
