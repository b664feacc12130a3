package tracing

import (
	"context"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter writes finished spans to the structured log. It
// implements sdktrace.SpanExporter.
type LogExporter struct {
	log *slog.Logger
}

// NewLogExporter builds a LogExporter over the given logger.
func NewLogExporter(log *slog.Logger) *LogExporter {
	return &LogExporter{log: log}
}

// ExportSpans logs one line per finished span. It never fails: a full
// log pipeline must not push back on the batch processor.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		e.log.Debug("span completed",
			"name", span.Name(),
			"kind", span.SpanKind().String(),
			"trace_id", span.SpanContext().TraceID().String(),
			"span_id", span.SpanContext().SpanID().String(),
			"duration", span.EndTime().Sub(span.StartTime()).Seconds(),
			"status", span.Status().Code.String(),
		)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter. The exporter holds no
// resources beyond the logger.
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}
