package api

import (
    "context"
    "errors"
    "fmt"
    "io"

    "golang.org/x/time/rate"

    "cargoproxy/internal/config"
    "cargoproxy/internal/fixtures"
    "cargoproxy/internal/seed"
    "cargoproxy/internal/store"
    "cargoproxy/internal/summary"
)

// eventsTopic is the broker topic every fixture event is published on.
const eventsTopic = "utils"

type Server struct {
    Store     store.Store
    Generator *seed.Generator
    Summaries *summary.Aggregator
    Broker    EventBroker
    Limiter   *rate.Limiter
    Config    config.Config
}

// NewServer wires a Server from cfg. With no backend URLs it uses the
// in-memory store and the in-process broker.
func NewServer(ctx context.Context, cfg config.Config) (*Server, error) {
    cat, err := fixtures.Default()
    if cfg.FixturesPath != "" {
        cat, err = fixtures.Load(cfg.FixturesPath)
    }
    if err != nil { return nil, fmt.Errorf("fixtures: %w", err) }

    s, err := store.Open(ctx, cfg.StoreOptions())
    if err != nil { return nil, fmt.Errorf("store: %w", err) }

    // Broker selection
    var broker EventBroker
    if cfg.RedisURL != "" {
        rb, err := NewRedisBroker(cfg.RedisURL)
        if err != nil { return nil, fmt.Errorf("broker: %w", err) }
        broker = rb
    } else {
        broker = NewBroker()
    }

    srv := &Server{
        Store:     s,
        Generator: seed.New(s, cat, seed.WithExtraSensorIDs(cfg.AdditionalSensorIDs)),
        Summaries: summary.New(s),
        Broker:    broker,
        Config:    cfg,
    }
    if cfg.RateRPS > 0 {
        burst := cfg.RateBurst
        if burst < 1 { burst = 1 }
        srv.Limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), burst)
    }
    return srv, nil
}

// Close releases the broker and store connections, when they hold any.
func (s *Server) Close() error {
    var errs []error
    if c, ok := s.Broker.(io.Closer); ok { errs = append(errs, c.Close()) }
    if c, ok := s.Store.(io.Closer); ok { errs = append(errs, c.Close()) }
    return errors.Join(errs...)
}
