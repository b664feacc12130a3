package http_api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jaekimandy/devops-demo/domain"
	"github.com/jaekimandy/devops-demo/domain/metrics"
	"github.com/jaekimandy/devops-demo/internal/application/report"
)

// Dependencies carries everything the server needs to answer requests.
type Dependencies struct {
	Reporter   *report.Reporter
	InfoCache  domain.PayloadCache
	Exposition http.Handler // Prometheus scrape handler for GET /metrics
	Logger     *slog.Logger
}

// Server owns the route table and handlers.
type Server struct {
	reporter   *report.Reporter
	infoCache  domain.PayloadCache
	exposition http.Handler
	log        *slog.Logger
	openapi    *OpenAPISpec
}

// NewServer builds a Server. The OpenAPI document is assembled once
// here; it only varies with the service version.
func NewServer(deps Dependencies) *Server {
	return &Server{
		reporter:   deps.Reporter,
		infoCache:  deps.InfoCache,
		exposition: deps.Exposition,
		log:        deps.Logger,
		openapi:    openAPIDocument(deps.Reporter.AppInfo().Version),
	}
}

// Router builds the route table. Unmatched paths fall through to the
// fixed 404 JSON body.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.exposition)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/metrics", s.handleRequestStats)
	mux.HandleFunc("GET /api/v1/info", s.handleInfo)
	mux.HandleFunc("GET /docs/{$}", s.handleDocs)
	mux.HandleFunc("GET /docs/openapi.json", s.handleOpenAPI)
	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reporter.Health())
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reporter.Status())
}

func (s *Server) handleRequestStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reporter.RequestStats())
}

// handleInfo serves the memoized info payload. The cache returns the
// marshaled bytes directly, so repeated hits inside the TTL are
// byte-identical.
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(s.infoCache.Get())
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.openapi)
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, metrics.NotFound())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, s.reporter.AppInfo()); err != nil {
		s.log.Error("failed to render index page", "error", err)
		writeJSON(w, http.StatusInternalServerError, metrics.InternalServerError())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Name}}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem auto; max-width: 40rem; }
    code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
  </style>
</head>
<body>
  <h1>{{.Name}}</h1>
  <p>{{.Description}}</p>
  <p>Version {{.Version}} &mdash; environment <code>{{.Environment}}</code></p>
  <h2>Endpoints</h2>
  <ul>
    <li><a href="/health"><code>GET /health</code></a> &mdash; health check</li>
    <li><a href="/metrics"><code>GET /metrics</code></a> &mdash; Prometheus metrics</li>
    <li><a href="/api/v1/status"><code>GET /api/v1/status</code></a> &mdash; application status</li>
    <li><a href="/api/v1/metrics"><code>GET /api/v1/metrics</code></a> &mdash; request statistics</li>
    <li><a href="/api/v1/info"><code>GET /api/v1/info</code></a> &mdash; application info</li>
    <li><a href="/docs/"><code>GET /docs/</code></a> &mdash; API documentation</li>
  </ul>
</body>
</html>
`
