package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func TestStartSpanRecordsAttributesAndErrors(t *testing.T) {
	recorder := withSpanRecorder(t)

	ctx, span := StartSpan(context.Background(), "catalog.sync")
	AddSpanAttributes(ctx, attribute.Int("catalog.free_found", 7))
	RecordError(ctx, errors.New("upstream unreachable"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(ended))
	}
	got := ended[0]
	if got.Name() != "catalog.sync" {
		t.Errorf("span name = %q, want %q", got.Name(), "catalog.sync")
	}
	var sawCount bool
	for _, attr := range got.Attributes() {
		if attr.Key == "catalog.free_found" && attr.Value.AsInt64() == 7 {
			sawCount = true
		}
	}
	if !sawCount {
		t.Errorf("span attributes %v missing catalog.free_found=7", got.Attributes())
	}
	if got.Status().Code != codes.Error {
		t.Errorf("span status = %v, want error", got.Status().Code)
	}
	if len(got.Events()) == 0 {
		t.Error("expected a recorded error event on the span")
	}
}

func TestRecordErrorIgnoresNil(t *testing.T) {
	recorder := withSpanRecorder(t)

	ctx, span := StartSpan(context.Background(), "catalog.sync")
	RecordError(ctx, nil)
	span.End()

	if got := recorder.Ended()[0].Status().Code; got == codes.Error {
		t.Errorf("nil error must not mark the span failed, got status %v", got)
	}
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("authorization=Bearer tok, x-tenant=acme,malformed")
	if headers["authorization"] != "Bearer tok" {
		t.Errorf("authorization = %q", headers["authorization"])
	}
	if headers["x-tenant"] != "acme" {
		t.Errorf("x-tenant = %q", headers["x-tenant"])
	}
	if _, ok := headers["malformed"]; ok {
		t.Error("entries without '=' must be dropped")
	}
}
