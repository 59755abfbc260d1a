package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestMiddleware_SuccessPath verifies successful generation records telemetry.
func TestMiddleware_SuccessPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	mw := NewMiddleware(tracer, metrics, &noopLogger{})

	meta := RequestMeta{Operation: "generate"}

	innerFunc := func(ctx context.Context, m RequestMeta) (bool, error) {
		return true, nil
	}

	wrapped := mw.Wrap(innerFunc)
	cached, err := wrapped(context.Background(), meta)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cached {
		t.Error("expected cached=true to pass through")
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "chart.generate" {
		t.Errorf("expected span name 'chart.generate', got %q", spans[0].Name())
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "chart.generate.total") == nil {
		t.Error("chart.generate.total metric not found")
	}
	if findMetric(rm, "chart.cache.hits") == nil {
		t.Error("chart.cache.hits metric not found")
	}
}

// TestMiddleware_ErrorPath verifies failed generation records error telemetry.
func TestMiddleware_ErrorPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	mw := NewMiddleware(tracer, metrics, &noopLogger{})

	meta := RequestMeta{Operation: "generate"}
	testErr := errors.New("ephemeris unavailable")

	innerFunc := func(ctx context.Context, m RequestMeta) (bool, error) {
		return false, testErr
	}

	wrapped := mw.Wrap(innerFunc)
	_, err := wrapped(context.Background(), meta)

	if err != testErr {
		t.Errorf("expected error %v, got %v", testErr, err)
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	var requestError bool
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "request.error" {
			requestError = attr.Value.AsBool()
		}
	}
	if !requestError {
		t.Error("expected request.error=true on failed generation")
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	errMetric := findMetric(rm, "chart.generate.errors")
	if errMetric == nil {
		t.Error("chart.generate.errors metric not found")
	} else {
		sum, ok := errMetric.Data.(metricdata.Sum[int64])
		if ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 1 {
			t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
		}
	}
}

// TestMiddleware_PropagatesContext verifies context is passed through.
func TestMiddleware_PropagatesContext(t *testing.T) {
	tracer := newNoopTracer()
	mw := NewMiddleware(tracer, &noopMetrics{}, &noopLogger{})

	meta := RequestMeta{Operation: "generate"}

	type ctxKey string
	testKey := ctxKey("test")
	testValue := "test_value"

	var receivedValue any

	innerFunc := func(ctx context.Context, m RequestMeta) (bool, error) {
		receivedValue = ctx.Value(testKey)
		return false, nil
	}

	wrapped := mw.Wrap(innerFunc)
	ctx := context.WithValue(context.Background(), testKey, testValue)
	if _, err := wrapped(ctx, meta); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	if receivedValue != testValue {
		t.Errorf("expected context value %q, got %v", testValue, receivedValue)
	}
}

// TestMiddleware_MeasuresDuration verifies duration is recorded.
func TestMiddleware_MeasuresDuration(t *testing.T) {
	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	tracer := newNoopTracer()
	mw := NewMiddleware(tracer, metrics, &noopLogger{})

	meta := RequestMeta{Operation: "generate"}

	innerFunc := func(ctx context.Context, m RequestMeta) (bool, error) {
		time.Sleep(100 * time.Millisecond)
		return false, nil
	}

	wrapped := mw.Wrap(innerFunc)
	if _, err := wrapped(context.Background(), meta); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	durationMetric := findMetric(rm, "chart.generate.duration_ms")
	if durationMetric == nil {
		t.Fatal("chart.generate.duration_ms metric not found")
	}

	hist, ok := durationMetric.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram, got %T", durationMetric.Data)
	}

	if len(hist.DataPoints) == 0 {
		t.Fatal("no histogram data points")
	}

	// Duration should be at least 100ms
	if hist.DataPoints[0].Sum < 90 {
		t.Errorf("expected duration >= 90ms, got %f", hist.DataPoints[0].Sum)
	}
}

// TestMiddleware_DisabledNoop verifies noop middleware still executes function.
func TestMiddleware_DisabledNoop(t *testing.T) {
	mw := NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})

	meta := RequestMeta{Operation: "generate"}
	calls := 0

	innerFunc := func(ctx context.Context, m RequestMeta) (bool, error) {
		calls++
		return true, nil
	}

	wrapped := mw.Wrap(innerFunc)
	cached, err := wrapped(context.Background(), meta)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cached {
		t.Error("expected cached=true")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestMiddlewareFromObserver_NilObserver verifies nil observer is rejected.
func TestMiddlewareFromObserver_NilObserver(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("expected ErrNilObserver, got %v", err)
	}
}
