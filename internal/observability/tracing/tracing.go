// Package tracing provides OpenTelemetry spans for the pipeline stages.
// A cycle produces one root span with child spans per summarization and
// delivery, so a slow cycle can be broken down item by item. Without a
// registered tracer provider every span is a no-op, which keeps the
// instrumentation on in all builds.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newswire")

// Tracer returns the shared tracer for creating spans.
func Tracer() trace.Tracer {
	return tracer
}

// StartSpan starts a span with the given name and attributes. The
// returned context carries the span for child spans started below it.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan ends the span, recording err as the span's error status when
// it is non-nil. Passing the operation's returned error keeps status
// handling in one place at the call site.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
