package http_api

import "net/http"

// OpenAPI 3.0 document types, trimmed to the fields this service's
// document actually uses.

type OpenAPISpec struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type PathItem struct {
	Get *Operation `json:"get,omitempty"`
}

type Operation struct {
	Summary     string               `json:"summary,omitempty"`
	OperationID string               `json:"operationId,omitempty"`
	Responses   map[string]*Response `json:"responses"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

type Schema struct {
	Type       string             `json:"type,omitempty"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Ref        string             `json:"$ref,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// openAPIDocument assembles the document served at /docs/openapi.json.
func openAPIDocument(version string) *OpenAPISpec {
	jsonResponse := func(description, ref string) map[string]*Response {
		return map[string]*Response{
			"200": {
				Description: description,
				Content: map[string]MediaType{
					"application/json": {Schema: &Schema{Ref: ref}},
				},
			},
		}
	}

	return &OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "DevOps Demo API",
			Description: "A demonstration of DevOps best practices",
			Version:     version,
		},
		Paths: map[string]*PathItem{
			"/health": {Get: &Operation{
				Summary:     "Health check",
				OperationID: "get_health",
				Responses:   jsonResponse("Service health", "#/components/schemas/Health"),
			}},
			"/metrics": {Get: &Operation{
				Summary:     "Prometheus metrics",
				OperationID: "get_prometheus_metrics",
				Responses: map[string]*Response{
					"200": {
						Description: "Metrics in Prometheus exposition format",
						Content: map[string]MediaType{
							"text/plain": {Schema: &Schema{Type: "string"}},
						},
					},
				},
			}},
			"/api/v1/status": {Get: &Operation{
				Summary:     "Get application status",
				OperationID: "get_status",
				Responses:   jsonResponse("Application status", "#/components/schemas/Health"),
			}},
			"/api/v1/metrics": {Get: &Operation{
				Summary:     "Get application metrics",
				OperationID: "get_metrics",
				Responses:   jsonResponse("Request statistics", "#/components/schemas/Metrics"),
			}},
			"/api/v1/info": {Get: &Operation{
				Summary:     "Get application information",
				OperationID: "get_info",
				Responses:   jsonResponse("Application information", "#/components/schemas/Info"),
			}},
		},
		Components: &Components{
			Schemas: map[string]*Schema{
				"Health": {
					Type: "object",
					Properties: map[string]*Schema{
						"status":    {Type: "string"},
						"timestamp": {Type: "string", Format: "date-time"},
						"version":   {Type: "string"},
						"uptime":    {Type: "number", Format: "double"},
					},
				},
				"Metrics": {
					Type: "object",
					Properties: map[string]*Schema{
						"requests_total":        {Type: "integer"},
						"requests_per_second":   {Type: "number", Format: "double"},
						"average_response_time": {Type: "number", Format: "double"},
					},
				},
				"Info": {
					Type: "object",
					Properties: map[string]*Schema{
						"name":        {Type: "string"},
						"description": {Type: "string"},
						"version":     {Type: "string"},
						"environment": {Type: "string"},
						"features":    {Type: "array", Items: &Schema{Type: "string"}},
					},
				},
				"Error": {
					Type: "object",
					Properties: map[string]*Schema{
						"error":   {Type: "string"},
						"message": {Type: "string"},
					},
				},
			},
		},
	}
}

// handleDocs serves a self-contained viewer that fetches the OpenAPI
// document and renders the operation list.
func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(docsHTML))
}

const docsHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>DevOps Demo API</title>
  <style>
    body { font-family: sans-serif; margin: 2rem auto; max-width: 40rem; }
    code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
    li { margin: 0.4rem 0; }
  </style>
</head>
<body>
  <h1 id="title">DevOps Demo API</h1>
  <p id="description"></p>
  <ul id="operations"></ul>
  <p><a href="/docs/openapi.json">openapi.json</a></p>
  <script>
    fetch('/docs/openapi.json')
      .then(function (res) { return res.json(); })
      .then(function (doc) {
        document.getElementById('title').textContent = doc.info.title + ' ' + doc.info.version;
        document.getElementById('description').textContent = doc.info.description || '';
        var list = document.getElementById('operations');
        Object.keys(doc.paths).sort().forEach(function (path) {
          var op = doc.paths[path].get;
          if (!op) { return; }
          var item = document.createElement('li');
          var code = document.createElement('code');
          code.textContent = 'GET ' + path;
          item.appendChild(code);
          item.appendChild(document.createTextNode(' - ' + (op.summary || '')));
          list.appendChild(item);
        });
      });
  </script>
</body>
</html>
`
