// Package config reads service settings from the environment.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"cargoproxy/internal/store"
)

// Config is the full set of environment-driven settings.
type Config struct {
	Port           string
	RedisURL       string
	RedisKeyPrefix string
	DatabaseURL    string
	DBMigrate      bool
	MongoURI       string
	MongoDatabase  string
	FixturesPath   string
	// AdditionalSensorIDs extends shipment generation with one extra
	// package per id for every vehicle.
	AdditionalSensorIDs []string
	RateRPS             float64
	RateBurst           int
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() Config {
	c := Config{
		Port:                envOr("PORT", "8080"),
		RedisURL:            os.Getenv("REDIS_URL"),
		RedisKeyPrefix:      envOr("REDIS_KEY_PREFIX", "cargo"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DBMigrate:           os.Getenv("DB_MIGRATE") != "false",
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       envOr("MONGO_DATABASE", "cargo"),
		FixturesPath:        os.Getenv("FIXTURES_PATH"),
		AdditionalSensorIDs: ParseSensorIDs(os.Getenv("ADDITIONAL_SENSOR_IDS")),
	}
	if v, err := strconv.ParseFloat(os.Getenv("RATE_RPS"), 64); err == nil && v > 0 {
		c.RateRPS = v
	}
	if n, err := strconv.Atoi(os.Getenv("RATE_BURST")); err == nil && n > 0 {
		c.RateBurst = n
	} else if c.RateRPS > 0 {
		c.RateBurst = int(math.Ceil(c.RateRPS))
	}
	return c
}

// StoreOptions maps the backend settings onto store.Options.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		RedisURL:       c.RedisURL,
		RedisKeyPrefix: c.RedisKeyPrefix,
		DatabaseURL:    c.DatabaseURL,
		Migrate:        c.DBMigrate,
		MongoURI:       c.MongoURI,
		MongoDatabase:  c.MongoDatabase,
	}
}

// ParseSensorIDs splits a comma separated list, trimming blanks and dropping
// empty entries.
func ParseSensorIDs(raw string) []string {
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
