// Package http_api exposes the service over HTTP: the health and
// metrics endpoints, the cached info payload, the Prometheus
// exposition, the HTML index and API documentation pages, and the
// fixed JSON error bodies for unmatched routes.
//
// The package only builds the route table and handlers; per-request
// concerns (instrumentation, request IDs, security headers, panic
// recovery) live in http_middleware and are layered on by the caller.
package http_api
