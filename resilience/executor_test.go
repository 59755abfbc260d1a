package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewExecutor(t *testing.T) {
	t.Run("bare executor carries no patterns", func(t *testing.T) {
		e := NewExecutor()

		if e.circuitBreaker != nil || e.retry != nil || e.rateLimiter != nil ||
			e.bulkhead != nil || e.timeout != nil {
			t.Errorf("NewExecutor() wired patterns without options: %+v", e)
		}
	})

	t.Run("options attach their patterns", func(t *testing.T) {
		cb := NewCircuitBreaker(CircuitBreakerConfig{})
		retry := NewRetry(RetryConfig{})
		rl := NewRateLimiter(RateLimiterConfig{})
		b := NewBulkhead(BulkheadConfig{})

		e := NewExecutor(
			WithCircuitBreaker(cb),
			WithRetry(retry),
			WithRateLimiter(rl),
			WithBulkhead(b),
			WithTimeout(time.Second),
		)

		if e.circuitBreaker != cb {
			t.Error("WithCircuitBreaker did not attach")
		}
		if e.retry != retry {
			t.Error("WithRetry did not attach")
		}
		if e.rateLimiter != rl {
			t.Error("WithRateLimiter did not attach")
		}
		if e.bulkhead != b {
			t.Error("WithBulkhead did not attach")
		}
		if e.timeout == nil {
			t.Error("WithTimeout did not attach")
		}
	})

	t.Run("prebuilt timeout attaches as-is", func(t *testing.T) {
		timeout := NewTimeout(TimeoutConfig{Timeout: 5 * time.Second})
		e := NewExecutor(WithTimeoutConfig(timeout))

		if e.timeout != timeout {
			t.Error("WithTimeoutConfig did not attach the given Timeout")
		}
	})
}

func TestExecutor_ExecuteNoPatterns(t *testing.T) {
	e := NewExecutor()

	ran := false
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if !ran {
		t.Error("operation did not run")
	}
}

func TestExecutor_ExecuteWithTimeout(t *testing.T) {
	e := NewExecutor(WithTimeout(20 * time.Millisecond))

	if err := e.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Errorf("fast operation Execute() error = %v", err)
	}

	err := e.Execute(context.Background(), func(ctx context.Context) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	if err != ErrTimeout {
		t.Errorf("slow operation Execute() error = %v, want ErrTimeout", err)
	}
}

func TestExecutor_ExecuteWithRetry(t *testing.T) {
	e := NewExecutor(
		WithRetry(NewRetry(RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			Jitter:       false,
		})),
	)

	attempts := 0
	transientErr := errors.New("geocoder timeout")

	err := e.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return transientErr
		}
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestExecutor_ExecuteWithCircuitBreaker(t *testing.T) {
	e := NewExecutor(
		WithCircuitBreaker(NewCircuitBreaker(CircuitBreakerConfig{
			MaxFailures:  2,
			ResetTimeout: time.Hour,
		})),
	)

	upstreamErr := errors.New("ephemeris unavailable")
	for i := 0; i < 2; i++ {
		_ = e.Execute(context.Background(), func(ctx context.Context) error {
			return upstreamErr
		})
	}

	// The streak above opened the circuit; the next call is refused
	// without running the operation.
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		t.Error("operation ran while circuit was open")
		return nil
	})
	if err != ErrCircuitOpen {
		t.Errorf("Execute() error = %v, want ErrCircuitOpen", err)
	}
}

func TestExecutor_ExecuteWithRateLimiter(t *testing.T) {
	e := NewExecutor(
		WithRateLimiter(NewRateLimiter(RateLimiterConfig{
			Rate:  10,
			Burst: 1,
		})),
	)

	if err := e.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	}); err != nil {
		t.Errorf("first Execute() error = %v", err)
	}

	err := e.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != ErrRateLimitExceeded {
		t.Errorf("second Execute() error = %v, want ErrRateLimitExceeded", err)
	}
}

func TestExecutor_ExecuteWithBulkhead(t *testing.T) {
	e := NewExecutor(
		WithBulkhead(NewBulkhead(BulkheadConfig{MaxConcurrent: 1})),
	)

	done := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = e.Execute(context.Background(), func(ctx context.Context) error {
			close(started)
			<-done
			return nil
		})
	}()

	<-started

	err := e.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})

	close(done)

	if err != ErrBulkheadFull {
		t.Errorf("Execute() error = %v, want ErrBulkheadFull", err)
	}
}

func TestExecutor_ComposedPatterns(t *testing.T) {
	// A fully loaded executor must still let the retry see transient
	// failures through the inner layers.
	e := NewExecutor(
		WithRateLimiter(NewRateLimiter(RateLimiterConfig{Rate: 1000, Burst: 10})),
		WithBulkhead(NewBulkhead(BulkheadConfig{MaxConcurrent: 10})),
		WithCircuitBreaker(NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 10})),
		WithRetry(NewRetry(RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			Jitter:       false,
		})),
		WithTimeout(time.Second),
	)

	attempts := 0
	transientErr := errors.New("geocoder timeout")

	err := e.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return transientErr
		}
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
