package metrics

import (
    "sync"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
)

var (
    // Registry is the dedicated Prometheus registry for the API
    Registry = prometheus.NewRegistry()
    // HTTPRequests counts requests by method, path, and status
    HTTPRequests = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
        []string{"method", "path", "status"},
    )
    // HTTPDuration records request durations in seconds
    HTTPDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
        []string{"method", "path", "status"},
    )

    // Resets counts fixture resets by outcome (ok, error)
    Resets = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "fixture_resets_total", Help: "Fixture resets by outcome."},
        []string{"status"},
    )
    // ResetDuration tracks how long a full reset takes, including utilization
    ResetDuration = prometheus.NewHistogram(
        prometheus.HistogramOpts{Name: "fixture_reset_duration_seconds", Help: "Fixture reset duration in seconds.", Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10}},
    )
    // SummaryEntities mirrors the last computed summaries (kind: count, warning, error)
    SummaryEntities = prometheus.NewGaugeVec(
        prometheus.GaugeOpts{Name: "summary_entities", Help: "Entity counts from the latest summary computation."},
        []string{"summary", "kind"},
    )
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
    regOnce.Do(func(){
        Registry.MustRegister(HTTPRequests)
        Registry.MustRegister(HTTPDuration)
        Registry.MustRegister(Resets)
        Registry.MustRegister(ResetDuration)
        Registry.MustRegister(SummaryEntities)
        // Go/process collectors on our registry
        Registry.MustRegister(collectors.NewGoCollector())
        Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    })
}

var regOnce sync.Once
