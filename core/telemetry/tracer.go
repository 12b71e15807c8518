package telemetry

import (
	"context"

	"github.com/anoideaopen/mirror/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of the spans this module emits.
const TracerName = version.ModulePath

// Tracer returns the tracer of the globally installed provider, so a
// provider installed later is picked up by subsequent spans.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName, trace.WithInstrumentationVersion(version.Module()))
}

// StartSpan starts a span for a reflective operation named name.
func StartSpan(ctx context.Context, name string, op OpTypeNum, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	return Tracer().Start(ctx, name, trace.WithAttributes(append(attrs, OpType(op))...))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
