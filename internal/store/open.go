package store

import (
    "context"
    "log"
    "strings"
)

// Options selects and configures a backend.
type Options struct {
    RedisURL       string
    RedisKeyPrefix string
    DatabaseURL    string
    Migrate        bool
    MongoURI       string
    MongoDatabase  string
}

// Open picks a backend: Redis if RedisURL is set, else Postgres if
// DatabaseURL is set, else Mongo if MongoURI is set, else Memory.
func Open(ctx context.Context, o Options) (Store, error) {
    switch {
    case strings.TrimSpace(o.RedisURL) != "":
        r, err := NewRedis(o.RedisURL, o.RedisKeyPrefix)
        if err != nil { return nil, err }
        log.Printf("store=redis prefix=%s", r.prefix)
        return r, nil
    case strings.TrimSpace(o.DatabaseURL) != "":
        p, err := NewPostgres(o.DatabaseURL)
        if err != nil { return nil, err }
        if o.Migrate {
            if err := p.Migrate(ctx); err != nil { _ = p.Close(); return nil, err }
        }
        log.Printf("store=postgres migrate=%t", o.Migrate)
        return p, nil
    case strings.TrimSpace(o.MongoURI) != "":
        m, err := NewMongo(o.MongoURI, o.MongoDatabase)
        if err != nil { return nil, err }
        log.Printf("store=mongo database=%s", m.db.Name())
        return m, nil
    default:
        log.Printf("store=memory")
        return NewMemory(), nil
    }
}
