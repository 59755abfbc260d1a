package observe

import (
	"context"
	"time"
)

// GenerateFunc is the signature for chart generation functions.
// This is the standard function signature that Middleware wraps.
type GenerateFunc func(ctx context.Context, meta RequestMeta) (cached bool, err error)

// Middleware wraps chart generation with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe GenerateFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a GenerateFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn GenerateFunc) GenerateFunc {
	return func(ctx context.Context, meta RequestMeta) (bool, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		cached, err := fn(ctx, meta)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordGeneration(ctx, meta, duration, cached, err)

		logger := m.logger
		if ext, ok := m.logger.(ExtendedLogger); ok {
			logger = ext.WithRequest(meta)
		}
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			{Key: "cached", Value: cached},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "chart generation failed", fields...)
		} else {
			logger.Info(ctx, "chart generation completed", fields...)
		}

		return cached, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
