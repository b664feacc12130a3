// Package tracing wires the optional OpenTelemetry pipeline. Finished
// spans are exported to the structured log rather than a collector:
// the demo ships no tracing backend, but the pipeline is the real SDK,
// so swapping the log exporter for an OTLP one is a one-line change.
//
// The pipeline is only constructed when TRACING_ENABLED is set; the
// rest of the service never imports OpenTelemetry types.
package tracing
