// Package profiling captures on-demand CPU profiles for endpoints that
// answer slower than a configured threshold. Each endpoint has a
// cooldown so a persistently slow route does not profile continuously.
package profiling

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jaekimandy/devops-demo/domain"
)

// Options configure a Trigger. Zero values select the defaults.
type Options struct {
	Threshold time.Duration // minimum duration that marks a request slow
	Duration  time.Duration // how long the CPU profile runs
	Cooldown  time.Duration // per-endpoint spacing between profiles
	Dir       string        // where profile files are written
}

// Trigger watches completed requests and profiles endpoints breaching
// the latency threshold. It implements domain.SlowRequestSink.
type Trigger struct {
	log      *slog.Logger
	opts     Options
	profiler profiler

	mu        sync.Mutex
	cooldowns map[string]time.Time
}

var _ domain.SlowRequestSink = (*Trigger)(nil)

// NewTrigger builds a Trigger. Unset options default to a 500ms
// threshold, 5s profile duration, 60s cooldown, and the OS temp dir.
func NewTrigger(log *slog.Logger, opts Options) *Trigger {
	if opts.Threshold <= 0 {
		opts.Threshold = 500 * time.Millisecond
	}
	if opts.Duration <= 0 {
		opts.Duration = 5 * time.Second
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = time.Minute
	}
	if opts.Dir == "" {
		opts.Dir = os.TempDir()
	}
	return &Trigger{
		log:       log,
		opts:      opts,
		profiler:  &realProfiler{},
		cooldowns: make(map[string]time.Time),
	}
}

// RequestCompleted inspects one finished request and, when it exceeded
// the threshold and the endpoint is not cooling down, starts a CPU
// profile in the background. It never blocks the request path.
func (t *Trigger) RequestCompleted(path string, d time.Duration) {
	if d < t.opts.Threshold {
		return
	}
	if !t.startCooldown(path) {
		return
	}

	t.log.Warn("slow endpoint detected, starting CPU profile",
		"path", path,
		"duration", d.Seconds(),
		"threshold", t.opts.Threshold.Seconds(),
	)
	go t.capture(path)
}

// capture runs one CPU profile and writes it to the configured dir.
func (t *Trigger) capture(path string) {
	sanitized := strings.ReplaceAll(path, "/", "_")
	filename := filepath.Join(t.opts.Dir, fmt.Sprintf("profile_%s_%d.pprof", sanitized, time.Now().Unix()))

	f, err := os.Create(filename)
	if err != nil {
		t.log.Error("failed to create profile file", "path", path, "error", err)
		return
	}
	defer f.Close()

	if err := t.profiler.StartCPUProfile(f); err != nil {
		t.log.Error("failed to start CPU profile", "path", path, "error", err)
		return
	}
	time.Sleep(t.opts.Duration)
	t.profiler.StopCPUProfile()

	t.log.Info("CPU profile completed", "path", path, "file", filename)
}

// startCooldown reports whether the endpoint was free to profile and,
// if so, marks it as cooling down. Check and set happen under one lock
// so concurrent slow requests cannot both start a profile.
func (t *Trigger) startCooldown(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if end, ok := t.cooldowns[path]; ok && time.Now().Before(end) {
		return false
	}
	t.cooldowns[path] = time.Now().Add(t.opts.Cooldown)
	return true
}

// isCoolingDown reports whether the endpoint is inside its cooldown.
func (t *Trigger) isCoolingDown(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if end, ok := t.cooldowns[path]; ok && time.Now().Before(end) {
		return true
	}
	delete(t.cooldowns, path)
	return false
}
