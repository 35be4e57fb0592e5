package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxVehicleIDLen = 256

var errMissingID = errors.New("missing vehicle id")

// validateVehicleID rejects ids that cannot be addressed as a single path
// segment under /utils/.
func validateVehicleID(id string) error {
	if id == "" {
		return errMissingID
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("invalid vehicle id %q: contains '/'", id)
	}
	if len(id) > maxVehicleIDLen {
		return fmt.Errorf("vehicle id longer than %d bytes", maxVehicleIDLen)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("vehicle id is not valid UTF-8")
	}
	return nil
}
