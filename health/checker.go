package health

import (
	"context"
	"time"
)

// Status is the health state of one dependency of the chart service
// (the cache directory, the geocoder, the ephemeris provider).
type Status int

const (
	// StatusHealthy means the dependency is fully usable.
	StatusHealthy Status = iota
	// StatusDegraded means the dependency works but needs attention,
	// such as a cache directory nearing its size ceiling.
	StatusDegraded
	// StatusUnhealthy means the dependency cannot serve requests.
	StatusUnhealthy
)

// String names the status for probe bodies and logs.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dependency probe.
type Result struct {
	// Status is the verdict.
	Status Status

	// Message explains the verdict in one line.
	Message string

	// Details carries checker-specific numbers, such as cache size.
	Details map[string]any

	// Duration is how long the probe ran.
	Duration time.Duration

	// Timestamp is when the probe started.
	Timestamp time.Time

	// Error is set when the probe failed or timed out.
	Error error
}

// Healthy builds a passing result with message.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded builds a needs-attention result with message.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy builds a failing result carrying err.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithDetails attaches checker-specific metadata.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// WithDuration records how long the probe ran.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker probes one dependency.
//
// Contract:
// - Concurrency: Check may be called concurrently and must be safe.
// - Context: Check must honor cancellation; a cancelled probe reports
//   Unhealthy rather than blocking readiness.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc wraps fn as a named checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the checker name.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check runs the wrapped function.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// PingChecker is a checker with a cheap reachability probe, used for the
// HTTP upstreams where a full check is just "did a GET come back".
type PingChecker interface {
	Checker

	// Ping reports reachability without building a full Result.
	Ping(ctx context.Context) error
}

// InfoChecker is a checker that can also report raw statistics, the
// way the cache directory checker exposes its size counters.
type InfoChecker interface {
	Checker

	// Info returns checker-specific statistics.
	Info(ctx context.Context) (map[string]any, error)
}
