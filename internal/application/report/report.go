// Package report derives the health, status, and request-statistics
// payloads served by the JSON endpoints from the rolling request
// window.
package report

import (
	"time"

	"github.com/jaekimandy/devops-demo/domain"
	"github.com/jaekimandy/devops-demo/domain/metrics"
)

// Reporter assembles the read models for the health and metrics
// endpoints. It holds no state of its own; every call reads the
// window afresh, so responses always reflect the current samples.
type Reporter struct {
	stats       domain.StatsReader
	version     string
	environment string
}

// NewReporter builds a Reporter over the given stats source. Version
// and environment are stamped into the payloads verbatim.
func NewReporter(stats domain.StatsReader, version, environment string) *Reporter {
	return &Reporter{
		stats:       stats,
		version:     version,
		environment: environment,
	}
}

// Health reports the liveness payload for GET /health. It always
// succeeds: the service being able to answer is the health signal.
func (r *Reporter) Health() metrics.HealthStatus {
	return r.snapshot("healthy")
}

// Status reports the payload for GET /api/v1/status, identical to
// Health except for the status string.
func (r *Reporter) Status() metrics.HealthStatus {
	return r.snapshot("operational")
}

func (r *Reporter) snapshot(status string) metrics.HealthStatus {
	return metrics.HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   r.version,
		Uptime:    r.stats.Uptime().Seconds(),
	}
}

// RequestStats summarizes the rolling window for GET /api/v1/metrics.
// RequestsTotal is the current window population, so after 1000
// requests it holds steady at the window capacity.
func (r *Reporter) RequestStats() metrics.RequestStats {
	return metrics.RequestStats{
		RequestsTotal:       r.stats.Size(),
		RequestsPerSecond:   r.stats.PerSecond(r.stats.Uptime().Seconds()),
		AverageResponseTime: r.stats.Average(),
	}
}

// AppInfo returns the static application description for
// GET /api/v1/info. The payload only varies with version and
// environment, which makes it a natural caching candidate.
func (r *Reporter) AppInfo() metrics.AppInfo {
	return metrics.AppInfo{
		Name:        "DevOps Demo Application",
		Description: "A demonstration of DevOps best practices",
		Version:     r.version,
		Environment: r.environment,
		Features: []string{
			"Health monitoring",
			"Metrics collection",
			"Structured logging",
			"API documentation",
			"Caching",
			"Security headers",
		},
	}
}
