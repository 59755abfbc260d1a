package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) (int64, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	found := findMetric(rm, name)
	if found == nil {
		return 0, false
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		return 0, false
	}
	return sum.DataPoints[0].Value, true
}

// TestMetrics_TotalCounterIncrements verifies chart.generate.total is incremented.
func TestMetrics_TotalCounterIncrements(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}

	m.RecordGeneration(context.Background(), meta, 100*time.Millisecond, false, nil)

	v, ok := counterValue(t, reader, "chart.generate.total")
	if !ok {
		t.Fatal("chart.generate.total metric not found")
	}
	if v != 1 {
		t.Errorf("expected count 1, got %d", v)
	}
}

// TestMetrics_CacheHitCounters verifies hit/miss counters track the cached flag.
func TestMetrics_CacheHitCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}

	m.RecordGeneration(context.Background(), meta, time.Millisecond, true, nil)
	m.RecordGeneration(context.Background(), meta, time.Millisecond, false, nil)
	m.RecordGeneration(context.Background(), meta, time.Millisecond, false, nil)

	hits, ok := counterValue(t, reader, "chart.cache.hits")
	if !ok || hits != 1 {
		t.Errorf("expected 1 cache hit, got %d (found=%v)", hits, ok)
	}
	misses, ok := counterValue(t, reader, "chart.cache.misses")
	if !ok || misses != 2 {
		t.Errorf("expected 2 cache misses, got %d (found=%v)", misses, ok)
	}
}

// TestMetrics_ErrorCounterOnFailure verifies errors counter incremented on failure.
func TestMetrics_ErrorCounterOnFailure(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}

	m.RecordGeneration(context.Background(), meta, 50*time.Millisecond, false, errors.New("ephemeris down"))

	v, ok := counterValue(t, reader, "chart.generate.errors")
	if !ok {
		t.Fatal("chart.generate.errors metric not found")
	}
	if v != 1 {
		t.Errorf("expected errors count 1, got %d", v)
	}

	// A failed request is neither a hit nor a miss.
	if hits, ok := counterValue(t, reader, "chart.cache.hits"); ok && hits != 0 {
		t.Errorf("expected 0 cache hits, got %d", hits)
	}
	if misses, ok := counterValue(t, reader, "chart.cache.misses"); ok && misses != 0 {
		t.Errorf("expected 0 cache misses, got %d", misses)
	}
}

// TestMetrics_DurationHistogramRecords verifies duration is recorded.
func TestMetrics_DurationHistogramRecords(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}

	m.RecordGeneration(context.Background(), meta, 50*time.Millisecond, false, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "chart.generate.duration_ms")
	if found == nil {
		t.Fatal("chart.generate.duration_ms metric not found")
	}

	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	dp := hist.DataPoints[0]
	if dp.Sum < 40 || dp.Sum > 60 {
		t.Errorf("expected duration ~50ms, got %f", dp.Sum)
	}
}

// TestMetrics_LabelsApplied verifies the operation label is attached.
func TestMetrics_LabelsApplied(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}

	m.RecordGeneration(context.Background(), meta, 10*time.Millisecond, false, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := findMetric(rm, "chart.generate.total")
	if found == nil {
		t.Fatal("chart.generate.total metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	foundOp := false
	for iter := sum.DataPoints[0].Attributes.Iter(); iter.Next(); {
		kv := iter.Attribute()
		if string(kv.Key) == "request.operation" {
			foundOp = true
			if kv.Value.AsString() != "generate" {
				t.Errorf("expected request.operation='generate', got %q", kv.Value.AsString())
			}
		}
	}
	if !foundOp {
		t.Error("request.operation attribute not found")
	}
}

// TestMetrics_ConcurrentRecording verifies thread safety.
func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := RequestMeta{Operation: "generate"}
	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			m.RecordGeneration(context.Background(), meta, time.Millisecond, false, nil)
		}()
	}

	wg.Wait()

	v, ok := counterValue(t, reader, "chart.generate.total")
	if !ok {
		t.Fatal("chart.generate.total metric not found")
	}
	if v != numGoroutines {
		t.Errorf("expected count %d, got %d", numGoroutines, v)
	}
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}
