package resilience

import (
	"context"
	"time"
)

// TimeoutConfig sets the deadline applied to each guarded call.
type TimeoutConfig struct {
	// Timeout is the per-call deadline.
	// Default: 30 seconds
	Timeout time.Duration
}

// Timeout bounds a single upstream call. A geocoder or ephemeris call
// that outlives its deadline returns ErrTimeout instead of holding the
// request open.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a deadline guard, defaulting to 30 seconds.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Timeout{config: config}
}

// Execute runs op under the configured deadline. The operation runs
// in its own goroutine and must honor ctx cancellation, otherwise it
// leaks past the deadline.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.config.Timeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return ctx.Err()
	}
}

// Config returns the deadline settings.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout runs op under a one-off deadline without keeping
// a Timeout around.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	t := NewTimeout(TimeoutConfig{Timeout: timeout})
	return t.Execute(ctx, op)
}
