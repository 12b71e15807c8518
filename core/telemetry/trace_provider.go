package telemetry

import (
	"context"
	"fmt"

	"github.com/anoideaopen/mirror/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// CollectorEndpoint describes where spans are exported to.
type CollectorEndpoint struct {
	// Endpoint is the host:port of an OTLP/HTTP collector.
	Endpoint string
	// CACerts is a base64 encoded PEM bundle. The connection is insecure when empty.
	CACerts string
}

// InstallTraceProvider installs a global trace provider exporting over
// OTLP/HTTP to settings. Without an endpoint a no-op provider is installed.
func InstallTraceProvider(
	settings *CollectorEndpoint,
	serviceName string,
) error {
	var tracerProvider trace.TracerProvider = noop.NewTracerProvider()

	defer func() {
		otel.SetTracerProvider(tracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	}()

	if settings == nil || len(settings.Endpoint) == 0 {
		return nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.Endpoint)}
	if settings.CACerts == "" {
		opts = append(opts, otlptracehttp.WithInsecure())
	} else {
		tlsConfig, err := getTLSConfig(settings.CACerts)
		if err != nil {
			return err
		}
		opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
	}

	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(opts...))
	if err != nil {
		return fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	r := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersionKey.String(version.Module()))

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r))

	return nil
}
