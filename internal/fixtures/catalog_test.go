package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogSizes(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"companies", len(c.Companies), 17},
		{"origins", len(c.Origins), 13},
		{"destinations", len(c.Destinations), 8},
		{"vehicleTypes", len(c.VehicleTypes), 19},
		{"packageDescriptions", len(c.PackageDescriptions), 12},
		{"operators", len(c.Operators), 19},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, tc.got, tc.want)
		}
	}
	if got := len(c.Facilities()); got != 21 {
		t.Fatalf("facilities: got %d, want 21", got)
	}
	if c.Companies[11] != "Pans & Company" || c.Origins[0] != "Albacete, Spain" {
		t.Fatalf("unexpected entries: %q %q", c.Companies[11], c.Origins[0])
	}
}

func TestDefaultIsShared(t *testing.T) {
	a, _ := Default()
	b, _ := Default()
	if a != b {
		t.Fatal("Default should return the same catalog")
	}
}

func TestParseRejectsOverlap(t *testing.T) {
	doc := []byte(`
companies: [A]
origins: [Madrid, Lugo]
destinations: [Madrid]
vehicleTypes: [Van]
packageDescriptions: [Box]
`)
	_, err := Parse(doc)
	if err == nil {
		t.Fatal("expected overlap error")
	}
	if !strings.Contains(err.Error(), `"Madrid"`) {
		t.Fatalf("error should name the facility: %v", err)
	}
}

func TestParseRejectsEmptyLists(t *testing.T) {
	_, err := Parse([]byte(`companies: [A]`))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, name := range []string{"origins", "destinations", "vehicleTypes", "packageDescriptions"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "companies: [A, B]\norigins: [O1]\ndestinations: [D1, D2]\nvehicleTypes: [Van]\npackageDescriptions: [Box]\noperators: [Op]\n"
	if err := os.WriteFile(p, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Companies) != 2 || len(c.Destinations) != 2 || c.Operators[0] != "Op" {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
