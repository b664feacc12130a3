package http_middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jaekimandy/devops-demo/domain"
	"github.com/jaekimandy/devops-demo/domain/metrics"
)

// RequestIDHeader is checked for an inbound request ID and set on
// every response.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter is a wrapper around http.ResponseWriter to capture the
// status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestID ensures every request carries an ID: an inbound
// X-Request-ID is kept, otherwise a UUID is minted. The ID is echoed on
// the response and stored in the request context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the ID stored by RequestID, or "" when
// the middleware did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Instrument creates the middleware that times every request and feeds
// the rolling window, the Prometheus registry, and the request log.
// The slow sink is optional; pass nil when profiling is disabled. It
// returns a function that takes an http.Handler and returns an
// http.Handler, suitable for chaining.
func Instrument(window domain.Recorder, httpMetrics domain.HTTPMetrics, slow domain.SlowRequestSink, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log.Info("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", RequestIDFromContext(r.Context()),
			)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			window.Record(duration)
			httpMetrics.IncRequest(r.Method, r.URL.Path, rw.statusCode)
			httpMetrics.ObserveLatency(duration)
			if slow != nil {
				slow.RequestCompleted(r.URL.Path, duration)
			}

			log.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration", duration.Seconds(),
				"request_id", RequestIDFromContext(r.Context()),
			)
		})
	}
}

// SecurityHeaders sets the baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		next.ServeHTTP(w, r)
	})
}

// Recover converts handler panics into the fixed 500 JSON body and
// keeps the process alive. It must sit innermost in the chain so the
// instrumentation above it observes the 500.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				log.Error("handler panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"request_id", RequestIDFromContext(r.Context()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				if body, err := json.Marshal(metrics.InternalServerError()); err == nil {
					w.Write(body)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
