package geo

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for geocoding.
var (
	// ErrPlaceNotFound means the service answered but had no match.
	ErrPlaceNotFound = errors.New("geo: place not found")

	// ErrGeocodeUnavailable means the service could not be reached or kept
	// failing after the client's internal retry policy.
	ErrGeocodeUnavailable = errors.New("geo: geocoding service unavailable")
)

// Position is a geographic position in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate range-checks the position.
func (p Position) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("geo: latitude %v outside [-90,90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("geo: longitude %v outside [-180,180]", p.Longitude)
	}
	return nil
}

// Geocoder resolves a free-text place name to a position.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Geocode must honor cancellation/deadlines.
// - Errors: ErrPlaceNotFound for a definitive miss; ErrGeocodeUnavailable
//   (possibly wrapped) for transport or service failure. Retrying is the
//   implementation's own business; callers never retry.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Position, error)
}
