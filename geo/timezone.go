package geo

import (
	"context"

	"github.com/ringsaturn/tzf"
)

// UTCZone is the fallback zone identifier.
const UTCZone = "UTC"

// TimezoneResolver maps a position to an IANA zone identifier.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: resolution never fails; unknown positions resolve to UTC.
type TimezoneResolver interface {
	Resolve(ctx context.Context, pos Position) string
}

// zoneFinder is the subset of the tzf finder the resolver needs.
type zoneFinder interface {
	GetTimezoneName(lng, lat float64) string
}

// TZFResolver resolves timezones from the embedded tzf polygon data,
// requiring no network call.
type TZFResolver struct {
	finder zoneFinder
}

// NewTZFResolver builds a resolver over the default embedded dataset.
func NewTZFResolver() (*TZFResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &TZFResolver{finder: finder}, nil
}

// Resolve returns the IANA zone for the position, or UTC when the lookup
// yields nothing (open ocean, polar gaps).
func (r *TZFResolver) Resolve(_ context.Context, pos Position) string {
	name := r.finder.GetTimezoneName(pos.Longitude, pos.Latitude)
	if name == "" {
		return UTCZone
	}
	return name
}

// StaticResolver always answers with a fixed zone. Useful for tests and for
// deployments pinned to a single region.
type StaticResolver struct {
	Zone string
}

// Resolve returns the configured zone, or UTC when unset.
func (r StaticResolver) Resolve(context.Context, Position) string {
	if r.Zone == "" {
		return UTCZone
	}
	return r.Zone
}

var (
	_ TimezoneResolver = (*TZFResolver)(nil)
	_ TimezoneResolver = StaticResolver{}
)
