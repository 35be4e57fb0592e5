package store

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    _ "github.com/jackc/pgx/v5/stdlib"

    "cargoproxy/internal/model"
)

const cacheEntriesDDL = `
CREATE TABLE IF NOT EXISTS cache_entries (
    bucket     text        NOT NULL,
    key        text        NOT NULL,
    value      jsonb       NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now(),
    PRIMARY KEY (bucket, key)
)`

// Postgres keeps every bucket in one cache_entries table, values as JSONB.
type Postgres struct {
    db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
    db, err := sql.Open("pgx", dsn)
    if err != nil {
        return nil, fmt.Errorf("open postgres: %w", err)
    }
    db.SetMaxOpenConns(10)
    db.SetMaxIdleConns(10)
    db.SetConnMaxLifetime(30 * time.Minute)
    if err := db.Ping(); err != nil {
        _ = db.Close()
        return nil, fmt.Errorf("verify postgres connection: %w", err)
    }
    return &Postgres{db: db}, nil
}

// Migrate creates the cache_entries table if needed.
func (p *Postgres) Migrate(ctx context.Context) error {
    if _, err := p.db.ExecContext(ctx, cacheEntriesDDL); err != nil {
        return fmt.Errorf("migrate cache_entries: %w", err)
    }
    return nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) Vehicles() Bucket[model.Vehicle]    { return pgBucket[model.Vehicle]{db: p.db, name: BucketVehicles} }
func (p *Postgres) Customers() Bucket[model.Customer]  { return pgBucket[model.Customer]{db: p.db, name: BucketCustomers} }
func (p *Postgres) Facilities() Bucket[model.Facility] { return pgBucket[model.Facility]{db: p.db, name: BucketFacilities} }
func (p *Postgres) Operators() Bucket[model.Operator]  { return pgBucket[model.Operator]{db: p.db, name: BucketOperators} }
func (p *Postgres) Shipments() Bucket[model.Shipment]  { return pgBucket[model.Shipment]{db: p.db, name: BucketShipments} }

type pgBucket[T any] struct {
    db   *sql.DB
    name string
}

func (b pgBucket[T]) Get(ctx context.Context, key string) (T, error) {
    var v T
    var raw []byte
    err := b.db.QueryRowContext(ctx, `SELECT value FROM cache_entries WHERE bucket=$1 AND key=$2`, b.name, key).Scan(&raw)
    if errors.Is(err, sql.ErrNoRows) { return v, ErrNotFound }
    if err != nil { return v, fmt.Errorf("select %s/%s: %w", b.name, key, err) }
    if err := json.Unmarshal(raw, &v); err != nil { return v, fmt.Errorf("decode %s/%s: %w", b.name, key, err) }
    return v, nil
}

func (b pgBucket[T]) Put(ctx context.Context, key string, v T) error {
    raw, err := json.Marshal(v)
    if err != nil { return fmt.Errorf("encode %s/%s: %w", b.name, key, err) }
    _, err = b.db.ExecContext(ctx, `INSERT INTO cache_entries (bucket, key, value, updated_at) VALUES ($1,$2,$3,now())
        ON CONFLICT (bucket, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, b.name, key, string(raw))
    if err != nil { return fmt.Errorf("upsert %s/%s: %w", b.name, key, err) }
    return nil
}

func (b pgBucket[T]) Clear(ctx context.Context) error {
    if _, err := b.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE bucket=$1`, b.name); err != nil {
        return fmt.Errorf("delete %s: %w", b.name, err)
    }
    return nil
}

func (b pgBucket[T]) Keys(ctx context.Context) ([]string, error) {
    rows, err := b.db.QueryContext(ctx, `SELECT key FROM cache_entries WHERE bucket=$1 ORDER BY key`, b.name)
    if err != nil { return nil, fmt.Errorf("list %s: %w", b.name, err) }
    defer rows.Close()
    keys := []string{}
    for rows.Next() {
        var k string
        if err := rows.Scan(&k); err != nil { return nil, fmt.Errorf("scan %s key: %w", b.name, err) }
        keys = append(keys, k)
    }
    if err := rows.Err(); err != nil { return nil, fmt.Errorf("list %s: %w", b.name, err) }
    return keys, nil
}
