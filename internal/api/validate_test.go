package api

import (
	"strings"
	"testing"
)

func TestValidateVehicleID(t *testing.T) {
	ok := []string{"truck-1", "VIN 42", "camión"}
	for _, id := range ok {
		if err := validateVehicleID(id); err != nil {
			t.Fatalf("%q: unexpected error %v", id, err)
		}
	}
	bad := []string{"", "a/b", strings.Repeat("x", maxVehicleIDLen+1), "\xff"}
	for _, id := range bad {
		if err := validateVehicleID(id); err == nil {
			t.Fatalf("%q: expected error", id)
		}
	}
}
