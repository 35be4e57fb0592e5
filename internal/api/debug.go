package api

import (
    "encoding/json"
    "net/http"
    "time"

    "cargoproxy/internal/buildinfo"
)

// DebugJSON reports build info and the non-secret parts of the config.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
    c := s.Config
    info := map[string]any{
        "build": buildinfo.Info(),
        "time":  time.Now().UTC().Format(time.RFC3339),
        "config": map[string]any{
            "PORT":                  c.Port,
            "REDIS_KEY_PREFIX":      c.RedisKeyPrefix,
            "MONGO_DATABASE":        c.MongoDatabase,
            "DB_MIGRATE":            c.DBMigrate,
            "FIXTURES_PATH":         c.FixturesPath,
            "ADDITIONAL_SENSOR_IDS": c.AdditionalSensorIDs,
            "RATE_RPS":              c.RateRPS,
            "RATE_BURST":            c.RateBurst,
            "HAS_DATABASE_URL":      c.DatabaseURL != "",
            "HAS_REDIS_URL":         c.RedisURL != "",
            "HAS_MONGO_URI":         c.MongoURI != "",
        },
    }
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(info)
}
