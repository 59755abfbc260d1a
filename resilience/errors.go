package resilience

import "errors"

var (
	// ErrCircuitOpen is returned when an upstream's circuit breaker is
	// open and calls are being rejected without being attempted.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrMaxRetriesExceeded is returned when retry attempts against an
	// upstream are exhausted. It wraps the last attempt's error.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")

	// ErrRateLimitExceeded is returned when a request arrives faster than
	// the token bucket refills. The HTTP layer maps it to 429.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the concurrency cap on upstream
	// calls is reached and the wait deadline passes.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when a guarded call outlives its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)
