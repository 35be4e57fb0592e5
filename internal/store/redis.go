package store

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sort"

    redis "github.com/redis/go-redis/v9"

    "cargoproxy/internal/model"
)

// Redis keeps each bucket in one hash named "<prefix>:<bucket>"; hash fields
// are entity keys and values are JSON documents.
type Redis struct {
    rdb    *redis.Client
    prefix string
}

// NewRedis connects using a redis:// URL.
func NewRedis(url, prefix string) (*Redis, error) {
    opt, err := redis.ParseURL(url)
    if err != nil { return nil, fmt.Errorf("parse redis url: %w", err) }
    return NewRedisClient(redis.NewClient(opt), prefix), nil
}

// NewRedisClient wraps an existing client.
func NewRedisClient(rdb *redis.Client, prefix string) *Redis {
    if prefix == "" { prefix = "cargo" }
    return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *Redis) Close() error { return r.rdb.Close() }

func (r *Redis) Vehicles() Bucket[model.Vehicle]    { return redisBucket[model.Vehicle]{rdb: r.rdb, hash: r.hashName(BucketVehicles)} }
func (r *Redis) Customers() Bucket[model.Customer]  { return redisBucket[model.Customer]{rdb: r.rdb, hash: r.hashName(BucketCustomers)} }
func (r *Redis) Facilities() Bucket[model.Facility] { return redisBucket[model.Facility]{rdb: r.rdb, hash: r.hashName(BucketFacilities)} }
func (r *Redis) Operators() Bucket[model.Operator]  { return redisBucket[model.Operator]{rdb: r.rdb, hash: r.hashName(BucketOperators)} }
func (r *Redis) Shipments() Bucket[model.Shipment]  { return redisBucket[model.Shipment]{rdb: r.rdb, hash: r.hashName(BucketShipments)} }

func (r *Redis) hashName(bucket string) string { return r.prefix + ":" + bucket }

type redisBucket[T any] struct {
    rdb  *redis.Client
    hash string
}

func (b redisBucket[T]) Get(ctx context.Context, key string) (T, error) {
    var v T
    raw, err := b.rdb.HGet(ctx, b.hash, key).Bytes()
    if errors.Is(err, redis.Nil) { return v, ErrNotFound }
    if err != nil { return v, fmt.Errorf("hget %s %s: %w", b.hash, key, err) }
    if err := json.Unmarshal(raw, &v); err != nil { return v, fmt.Errorf("decode %s %s: %w", b.hash, key, err) }
    return v, nil
}

func (b redisBucket[T]) Put(ctx context.Context, key string, v T) error {
    raw, err := json.Marshal(v)
    if err != nil { return fmt.Errorf("encode %s %s: %w", b.hash, key, err) }
    if err := b.rdb.HSet(ctx, b.hash, key, raw).Err(); err != nil {
        return fmt.Errorf("hset %s %s: %w", b.hash, key, err)
    }
    return nil
}

func (b redisBucket[T]) Clear(ctx context.Context) error {
    if err := b.rdb.Del(ctx, b.hash).Err(); err != nil {
        return fmt.Errorf("del %s: %w", b.hash, err)
    }
    return nil
}

func (b redisBucket[T]) Keys(ctx context.Context) ([]string, error) {
    keys, err := b.rdb.HKeys(ctx, b.hash).Result()
    if err != nil { return nil, fmt.Errorf("hkeys %s: %w", b.hash, err) }
    sort.Strings(keys)
    return keys, nil
}
