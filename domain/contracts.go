package domain

import "time"

// Recorder is the write side of the rolling request window. The HTTP
// middleware invokes it once per completed request with the measured
// duration.
type Recorder interface {
	Record(d time.Duration)
}

// StatsReader is the read side of the rolling request window, used to
// derive the statistics served by the API endpoints.
type StatsReader interface {
	// Size reports how many samples the window currently holds.
	Size() int
	// Average returns the arithmetic mean of the windowed durations in
	// seconds, or 0 for an empty window.
	Average() float64
	// PerSecond divides the window population by elapsedSeconds,
	// returning 0 when elapsedSeconds <= 0.
	PerSecond(elapsedSeconds float64) float64
	// Uptime reports wall-clock time since the window was created,
	// which coincides with process start.
	Uptime() time.Duration
}

// Window is the combined contract for the rolling request window.
type Window interface {
	Recorder
	StatsReader
}

// HTTPMetrics is the pull-based metrics registry fed alongside the
// window on every request.
type HTTPMetrics interface {
	IncRequest(method, endpoint string, status int)
	ObserveLatency(d time.Duration)
}

// PayloadCache memoizes a computed payload for a bounded lifetime.
type PayloadCache interface {
	Get() []byte
	Invalidate()
}

// SlowRequestSink receives completed requests that may warrant
// diagnostics, such as on-demand profiling. Implementations must not
// block the request path.
type SlowRequestSink interface {
	RequestCompleted(path string, d time.Duration)
}
