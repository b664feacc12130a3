// Package monitoring owns the Prometheus collectors for the HTTP
// surface and the exposition handler scraped at /metrics.
package monitoring

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaekimandy/devops-demo/domain"
)

// RequestMetrics aggregates per-request counters and the latency
// histogram. All collectors are registered on a private registry so
// independent instances (for example in tests) never collide.
// It implements the domain.HTTPMetrics interface.
var _ domain.HTTPMetrics = (*RequestMetrics)(nil)

type RequestMetrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// NewRequestMetrics builds the collectors and registers them together
// with the standard Go runtime and process collectors.
func NewRequestMetrics() (*RequestMetrics, error) {
	m := &RequestMetrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	toRegister := []prometheus.Collector{
		m.requestsTotal,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return m, nil
}

// IncRequest increments the counter for the (method, endpoint, status)
// key, creating it on first use. Counters only ever grow.
func (m *RequestMetrics) IncRequest(method, endpoint string, status int) {
	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
}

// ObserveLatency records a request duration into the latency histogram.
func (m *RequestMetrics) ObserveLatency(d time.Duration) {
	m.requestDuration.Observe(d.Seconds())
}

// Handler returns the exposition handler for this registry. The
// response is the Prometheus text format
// (text/plain; version=0.0.4; charset=utf-8).
func (m *RequestMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
