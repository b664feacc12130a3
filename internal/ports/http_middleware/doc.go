// Package http_middleware carries the per-request plumbing shared by
// every route: request IDs, instrumentation of the rolling window and
// the Prometheus registry, security headers, and panic recovery.
//
// The middleware wraps standard net/http handlers. Recovery must sit
// innermost in the chain so the instrumentation above it observes the
// 500 written for a panicking handler.
package http_middleware
