package health

import "errors"

var (
	// ErrCheckFailed indicates a dependency check failed outright.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a dependency check exceeded the
	// aggregator's timeout. The cache, geocoder, and ephemeris checkers
	// all surface slowness through this sentinel.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under the
	// requested name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoCheckers indicates the aggregator has nothing registered.
	ErrNoCheckers = errors.New("health: no checkers registered")
)
