package api

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "cargoproxy/internal/metrics"
    "cargoproxy/internal/model"
    "cargoproxy/internal/store"
)

// HealthHandler handles GET /utils/health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
    w.Header().Set("Content-Type", "text/plain; charset=utf-8")
    _, _ = w.Write([]byte("ok"))
}

// ReadyHandler handles GET /readyz
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
    // Check connectivity when the store is remote
    type pinger interface{ Ping(ctx context.Context) error }
    if p, ok := s.Store.(pinger); ok {
        ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
        defer cancel()
        if err := p.Ping(ctx); err != nil { writeProblem(w, 503, "Not Ready", err.Error(), r.URL.Path); return }
    }
    writeJSON(w, 200, map[string]string{"status": "ready"})
}

// ResetAllHandler handles POST /utils/resetAll
func (s *Server) ResetAllHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    start := time.Now()
    err := s.Generator.Reset(r.Context())
    metrics.ResetDuration.Observe(time.Since(start).Seconds())
    if err != nil {
        metrics.Resets.WithLabelValues("error").Inc()
        writeProblem(w, http.StatusInternalServerError, "Reset failed", err.Error(), r.URL.Path)
        return
    }
    metrics.Resets.WithLabelValues("ok").Inc()
    s.Broker.Publish(eventsTopic, SSEEvent{Type: "fixtures.reset", Data: map[string]any{"ts": time.Now().UTC().Format(time.RFC3339)}})
    w.WriteHeader(http.StatusNoContent)
}

// SummariesHandler handles GET /utils/summaries
func (s *Server) SummariesHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    items, err := s.Summaries.Summarize(r.Context())
    if err != nil {
        writeProblem(w, http.StatusInternalServerError, "Summaries failed", err.Error(), r.URL.Path)
        return
    }
    for _, it := range items {
        metrics.SummaryEntities.WithLabelValues(it.Name, "count").Set(float64(it.Count))
        metrics.SummaryEntities.WithLabelValues(it.Name, "warning").Set(float64(it.WarningCount))
        metrics.SummaryEntities.WithLabelValues(it.Name, "error").Set(float64(it.ErrorCount))
    }
    writeJSON(w, http.StatusOK, items)
}

// VehicleByIDHandler handles PUT/GET /utils/{id}
func (s *Server) VehicleByIDHandler(w http.ResponseWriter, r *http.Request) {
    path := r.URL.Path
    id := strings.TrimPrefix(path, "/utils/")
    if err := validateVehicleID(id); id == path || err != nil {
        writeProblem(w, http.StatusNotFound, "Not Found", fmt.Sprint(err), path)
        return
    }
    switch r.Method {
    case http.MethodPut:
        var v model.Vehicle
        if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
            writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), path)
            return
        }
        // no reference checks: origin/destination are stored as sent
        if err := s.Store.Vehicles().Put(r.Context(), id, v); err != nil {
            writeProblem(w, http.StatusInternalServerError, "Put vehicle failed", err.Error(), path)
            return
        }
        s.Broker.Publish(eventsTopic, SSEEvent{Type: "vehicle.updated", Data: map[string]any{"id": id, "status": v.Status}})
        w.WriteHeader(http.StatusNoContent)
    case http.MethodGet:
        v, err := s.Store.Vehicles().Get(r.Context(), id)
        if errors.Is(err, store.ErrNotFound) { writeProblem(w, 404, "Vehicle not found", id, path); return }
        if err != nil { writeProblem(w, 500, "Get vehicle failed", err.Error(), path); return }
        writeJSON(w, http.StatusOK, v)
    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}
