package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestRequestMeta_SpanName verifies the deterministic span name format.
func TestRequestMeta_SpanName(t *testing.T) {
	tests := []struct {
		operation string
		expected  string
	}{
		{"generate", "chart.generate"},
		{"sweep", "chart.sweep"},
	}
	for _, tc := range tests {
		meta := RequestMeta{Operation: tc.operation}
		if got := meta.SpanName(); got != tc.expected {
			t.Errorf("SpanName(%q) = %q, want %q", tc.operation, got, tc.expected)
		}
	}
}

// TestTracer_SpanAttributes verifies all attributes are present on span.
func TestTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	tr := &tracerImpl{tracer: tracer}
	meta := RequestMeta{
		ID:        "req-42",
		Operation: "generate",
		CacheKey:  "abc123",
	}

	ctx, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)
	_ = ctx

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]

	if s.Name() != "chart.generate" {
		t.Errorf("expected span name 'chart.generate', got %q", s.Name())
	}

	attrMap := make(map[string]attribute.Value)
	for _, a := range s.Attributes() {
		attrMap[string(a.Key)] = a.Value
	}

	if v, ok := attrMap["request.operation"]; !ok || v.AsString() != "generate" {
		t.Errorf("expected request.operation='generate', got %v", v)
	}
	if v, ok := attrMap["request.id"]; !ok || v.AsString() != "req-42" {
		t.Errorf("expected request.id='req-42', got %v", v)
	}
	if v, ok := attrMap["chart.key"]; !ok || v.AsString() != "abc123" {
		t.Errorf("expected chart.key='abc123', got %v", v)
	}
	if v, ok := attrMap["request.error"]; !ok || v.AsBool() != false {
		t.Errorf("expected request.error=false, got %v", v)
	}
}

// TestTracer_SpanAttributesMinimal verifies only required attributes when minimal meta.
func TestTracer_SpanAttributesMinimal(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	tr := &tracerImpl{tracer: tracer}
	meta := RequestMeta{Operation: "sweep"}

	ctx, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)
	_ = ctx

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	attrMap := make(map[string]attribute.Value)
	for _, a := range spans[0].Attributes() {
		attrMap[string(a.Key)] = a.Value
	}

	if _, ok := attrMap["request.operation"]; !ok {
		t.Error("expected request.operation attribute")
	}
	if _, ok := attrMap["request.error"]; !ok {
		t.Error("expected request.error attribute")
	}

	// Optional attributes should NOT be present when empty
	if v, ok := attrMap["request.id"]; ok && v.AsString() != "" {
		t.Errorf("expected no request.id, got %v", v)
	}
	if v, ok := attrMap["chart.key"]; ok && v.AsString() != "" {
		t.Errorf("expected no chart.key, got %v", v)
	}
}

// TestTracer_ContextPropagation verifies parent span is propagated.
func TestTracer_ContextPropagation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	tr := &tracerImpl{tracer: tracer}
	meta := RequestMeta{Operation: "generate"}

	// Create parent span
	parentCtx, parentSpan := tracer.Start(context.Background(), "parent")

	// Create child span through our tracer
	childCtx, childSpan := tr.StartSpan(parentCtx, meta)
	tr.EndSpan(childSpan, nil)
	parentSpan.End()
	_ = childCtx

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	var child sdktrace.ReadOnlySpan
	for _, s := range spans {
		if s.Name() == "chart.generate" {
			child = s
			break
		}
	}
	if child == nil {
		t.Fatal("child span not found")
	}

	if child.Parent().TraceID() != parentSpan.SpanContext().TraceID() {
		t.Error("child span should have same trace ID as parent")
	}
	if !child.Parent().SpanID().IsValid() {
		t.Error("child span should have valid parent span ID")
	}
}

// TestTracer_ErrorRecording verifies error sets span status and attribute.
func TestTracer_ErrorRecording(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	tr := &tracerImpl{tracer: tracer}
	meta := RequestMeta{Operation: "generate"}

	ctx, span := tr.StartSpan(context.Background(), meta)
	testErr := errors.New("ephemeris unavailable")
	tr.EndSpan(span, testErr)
	_ = ctx

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]

	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}

	var requestError bool
	for _, a := range s.Attributes() {
		if string(a.Key) == "request.error" {
			requestError = a.Value.AsBool()
			break
		}
	}
	if !requestError {
		t.Error("expected request.error=true")
	}
}
