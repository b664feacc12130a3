package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaekimandy/devops-demo/domain/metrics"
	"github.com/jaekimandy/devops-demo/infrastructure/storage/inmemory"
)

func TestHealthAndStatus(t *testing.T) {
	store := inmemory.NewStore()
	reporter := NewReporter(store, "1.0.0", "testing")

	before := time.Now().UTC()
	health := reporter.Health()
	status := reporter.Status()

	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "operational", status.Status)

	// Apart from the status string the two payloads are identical in shape.
	for name, snapshot := range map[string]metrics.HealthStatus{
		"health": health,
		"status": status,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "1.0.0", snapshot.Version)
			assert.GreaterOrEqual(t, snapshot.Uptime, 0.0)
			assert.False(t, snapshot.Timestamp.Before(before))
			assert.Equal(t, time.UTC, snapshot.Timestamp.Location())
		})
	}
}

func TestRequestStatsEmptyWindow(t *testing.T) {
	store := inmemory.NewStore()
	reporter := NewReporter(store, "1.0.0", "testing")

	stats := reporter.RequestStats()

	assert.Equal(t, 0, stats.RequestsTotal)
	assert.Zero(t, stats.RequestsPerSecond)
	assert.Zero(t, stats.AverageResponseTime)
}

func TestRequestStatsDerivation(t *testing.T) {
	store := inmemory.NewStore()
	reporter := NewReporter(store, "1.0.0", "testing")

	store.Record(100 * time.Millisecond)
	store.Record(200 * time.Millisecond)
	store.Record(300 * time.Millisecond)

	stats := reporter.RequestStats()

	require.Equal(t, 3, stats.RequestsTotal)
	assert.InDelta(t, 0.2, stats.AverageResponseTime, 1e-9)
	// Uptime is tiny but positive, so the rate must be as well.
	assert.Greater(t, stats.RequestsPerSecond, 0.0)
}

func TestAppInfo(t *testing.T) {
	store := inmemory.NewStore()
	reporter := NewReporter(store, "1.0.0", "staging")

	info := reporter.AppInfo()

	assert.Equal(t, "DevOps Demo Application", info.Name)
	assert.Equal(t, "A demonstration of DevOps best practices", info.Description)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "staging", info.Environment)
	assert.Contains(t, info.Features, "Health monitoring")
	assert.Contains(t, info.Features, "Security headers")
	assert.Len(t, info.Features, 6)
}
