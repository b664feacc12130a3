package tracing

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup builds a TracerProvider that batches spans into the log
// exporter and installs it as the global provider. Callers own the
// returned provider and must Shutdown it on exit.
func Setup(exporter sdktrace.SpanExporter, serviceName, serviceVersion string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func newResource(serviceName, serviceVersion string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
}

// Wrap instruments an HTTP handler so every request runs inside a
// server span recorded by the installed provider.
func Wrap(handler http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(handler, operation)
}
