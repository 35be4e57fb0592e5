// Package fixtures holds the fixed name lists the demo fleet is built from.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the immutable set of names used by the generator.
type Catalog struct {
	Companies           []string `yaml:"companies"`
	Origins             []string `yaml:"origins"`
	Destinations        []string `yaml:"destinations"`
	VehicleTypes        []string `yaml:"vehicleTypes"`
	PackageDescriptions []string `yaml:"packageDescriptions"`
	Operators           []string `yaml:"operators"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog. It is parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// Load reads a catalog from a YAML file on disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every list the generator draws from is non-empty and
// that no facility name is both an origin and a destination.
func (c *Catalog) Validate() error {
	var errs []error
	required := []struct {
		name string
		list []string
	}{
		{"companies", c.Companies},
		{"origins", c.Origins},
		{"destinations", c.Destinations},
		{"vehicleTypes", c.VehicleTypes},
		{"packageDescriptions", c.PackageDescriptions},
	}
	for _, r := range required {
		if len(r.list) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", r.name))
		}
	}
	origins := make(map[string]struct{}, len(c.Origins))
	for _, o := range c.Origins {
		origins[o] = struct{}{}
	}
	for _, d := range c.Destinations {
		if _, ok := origins[d]; ok {
			errs = append(errs, fmt.Errorf("facility %q is both origin and destination", d))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// Facilities returns origins followed by destinations.
func (c *Catalog) Facilities() []string {
	out := make([]string, 0, len(c.Origins)+len(c.Destinations))
	out = append(out, c.Origins...)
	return append(out, c.Destinations...)
}
