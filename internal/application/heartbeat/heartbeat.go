// Package heartbeat emits a periodic operational log line so that
// deployments without a metrics scraper still leave a liveness trail
// in the logs.
package heartbeat

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jaekimandy/devops-demo/domain"
)

// Start launches a background goroutine that logs service status every
// interval. It returns a function that stops the goroutine; calling it
// more than once is safe. An interval <= 0 disables the heartbeat and
// returns a no-op stop.
func Start(stats domain.StatsReader, log *slog.Logger, interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				log.Info("heartbeat",
					"status", "healthy",
					"uptime", stats.Uptime().Seconds(),
					"requests_total", stats.Size(),
				)
			case <-done:
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
