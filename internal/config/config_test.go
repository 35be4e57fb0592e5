package config

import (
	"reflect"
	"testing"
)

func TestParseSensorIDs(t *testing.T) {
	cases := map[string][]string{
		"":                   nil,
		" , ,":               nil,
		"s1":                 {"s1"},
		" s1 , s2,,s3 ":      {"s1", "s2", "s3"},
		"gateway-7/temp, x ": {"gateway-7/temp", "x"},
	}
	for in, want := range cases {
		if got := ParseSensorIDs(in); !reflect.DeepEqual(got, want) {
			t.Errorf("ParseSensorIDs(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "REDIS_URL", "REDIS_KEY_PREFIX", "DATABASE_URL", "DB_MIGRATE", "MONGO_URI", "MONGO_DATABASE", "FIXTURES_PATH", "ADDITIONAL_SENSOR_IDS", "RATE_RPS", "RATE_BURST"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	if c.Port != "8080" || c.RedisKeyPrefix != "cargo" || c.MongoDatabase != "cargo" {
		t.Fatalf("defaults: %+v", c)
	}
	if !c.DBMigrate {
		t.Fatal("DBMigrate should default to true")
	}
	if c.RateRPS != 0 || c.RateBurst != 0 || c.AdditionalSensorIDs != nil {
		t.Fatalf("unexpected limits/ids: %+v", c)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("ADDITIONAL_SENSOR_IDS", "a, b")
	t.Setenv("RATE_RPS", "2.5")
	t.Setenv("RATE_BURST", "")

	c := FromEnv()
	if c.Port != "9090" || c.DBMigrate {
		t.Fatalf("overrides: %+v", c)
	}
	if !reflect.DeepEqual(c.AdditionalSensorIDs, []string{"a", "b"}) {
		t.Fatalf("sensor ids: %v", c.AdditionalSensorIDs)
	}
	if c.RateRPS != 2.5 || c.RateBurst != 3 {
		t.Fatalf("rate: %v burst %d", c.RateRPS, c.RateBurst)
	}
	if o := c.StoreOptions(); o.RedisURL != "redis://localhost:6379/0" || o.Migrate {
		t.Fatalf("store options: %+v", o)
	}
}
