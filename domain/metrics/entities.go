package metrics

import "time"

// --- Report payloads ---

// HealthStatus is the payload served by /health and /api/v1/status.
// Timestamp marshals as RFC 3339 UTC; Uptime is seconds elapsed since
// process start, as a float.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// RequestStats is the payload served by /api/v1/metrics. RequestsTotal
// counts the samples currently held in the rolling window, so it never
// exceeds the window capacity.
type RequestStats struct {
	RequestsTotal       int     `json:"requests_total"`
	RequestsPerSecond   float64 `json:"requests_per_second"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// AppInfo is the static informational payload served by /api/v1/info.
type AppInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Features    []string `json:"features"`
}

// ErrorBody is the fixed JSON shape for 404 and 500 responses.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotFound is the body answered for unmatched routes.
func NotFound() ErrorBody {
	return ErrorBody{
		Error:   "Not found",
		Message: "The requested resource was not found",
	}
}

// InternalServerError is the body answered when a handler fails. It
// deliberately carries no detail about the failure.
func InternalServerError() ErrorBody {
	return ErrorBody{
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
	}
}
