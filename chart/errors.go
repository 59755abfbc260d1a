package chart

import (
	"errors"
	"fmt"
)

// Sentinel errors for chart computation.
var (
	// ErrConstruction means every house system in the fallback order plus
	// the provider default failed; the chart cannot be built.
	ErrConstruction = errors.New("chart: chart construction failed")
)

// ValidationError reports the first missing or malformed request field.
type ValidationError struct {
	// Field is the offending field name.
	Field string

	// Reason describes the problem; empty means "missing".
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("chart: missing required field %q", e.Field)
	}
	return fmt.Sprintf("chart: invalid field %q: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
