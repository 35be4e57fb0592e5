package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargoproxy/internal/metrics"
)

// Routes wires every endpoint behind request id, logging and rate limit
// middleware.
func (s *Server) Routes() http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	mux.HandleFunc("/utils/health", s.HealthHandler)
	mux.HandleFunc("/utils/resetAll", s.ResetAllHandler)
	mux.HandleFunc("/utils/summaries", s.SummariesHandler)
	mux.HandleFunc("/utils/events/stream", s.EventsStreamHandler)
	mux.HandleFunc("/utils/ws", s.EventsWSHandler)
	// everything else under /utils/ is a vehicle id
	mux.HandleFunc("/utils/", s.VehicleByIDHandler)

	mux.HandleFunc("/readyz", s.ReadyHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/debug/info", s.DebugJSON)

	return requestIDMiddleware(loggingMiddleware(s.rateLimitMiddleware(mux)))
}
