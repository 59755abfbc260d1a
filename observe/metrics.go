package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records chart request metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordGeneration records one chart generation with duration,
	// cache outcome, and error status.
	RecordGeneration(ctx context.Context, meta RequestMeta, duration time.Duration, cached bool, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"chart.generate.total",
		metric.WithDescription("Total number of chart generations"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"chart.generate.errors",
		metric.WithDescription("Total number of failed chart generations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"chart.cache.hits",
		metric.WithDescription("Chart requests served from the artifact cache"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"chart.cache.misses",
		metric.WithDescription("Chart requests that required computation"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"chart.generate.duration_ms",
		metric.WithDescription("Chart generation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		durationHist: durationHist,
	}, nil
}

// RecordGeneration records metrics for one chart generation.
func (m *metricsImpl) RecordGeneration(ctx context.Context, meta RequestMeta, duration time.Duration, cached bool, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("request.operation", meta.Operation),
	}
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	} else if cached {
		m.cacheHits.Add(ctx, 1, opt)
	} else {
		m.cacheMisses.Add(ctx, 1, opt)
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordGeneration(ctx context.Context, meta RequestMeta, duration time.Duration, cached bool, err error) {
}
