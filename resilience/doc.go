// Package resilience provides resilience patterns for upstream calls.
//
// Chart generation leans on two network collaborators, the geocoder and the
// ephemeris provider, and both can be slow, flaky, or down. This package
// implements the patterns that keep one bad upstream from taking the whole
// service with it.
//
// # Patterns
//
//   - Circuit Breaker: stops hammering an upstream that keeps failing and
//     probes it again after a cooldown.
//
//   - Retry: retries transient failures with exponential backoff and jitter.
//     A RetryIf predicate keeps definitive answers (a place that does not
//     exist, an unsupported house system) from being retried.
//
//   - Rate Limiter: bounds the request rate, both toward rate-limited public
//     APIs and on our own inbound surface.
//
//   - Bulkhead: caps concurrent operations so a slow upstream cannot pile up
//     unbounded goroutines.
//
//   - Timeout: bounds a single call.
//
// # Usage
//
// Each pattern can be used independently or composed through an Executor:
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 200 * time.Millisecond,
//	    RetryIf:      func(err error) bool { return !errors.Is(err, geo.ErrPlaceNotFound) },
//	})
//
//	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    MaxFailures:  5,
//	    ResetTimeout: 30 * time.Second,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(breaker),
//	    resilience.WithRetry(retry),
//	    resilience.WithTimeout(5*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callUpstream(ctx)
//	})
package resilience
