package http_api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPIDocument(t *testing.T) {
	env := newTestEnv(t)

	rr := get(t, env.server.Router(), "/docs/openapi.json")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var doc OpenAPISpec
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "DevOps Demo API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)

	for _, path := range []string{"/health", "/metrics", "/api/v1/status", "/api/v1/metrics", "/api/v1/info"} {
		require.Contains(t, doc.Paths, path)
		require.NotNil(t, doc.Paths[path].Get, "every documented path is a GET")
		assert.Contains(t, doc.Paths[path].Get.Responses, "200")
	}

	require.NotNil(t, doc.Components)
	for _, schema := range []string{"Health", "Metrics", "Info", "Error"} {
		assert.Contains(t, doc.Components.Schemas, schema)
	}
	assert.Contains(t, doc.Components.Schemas["Metrics"].Properties, "requests_total")
}

func TestDocsViewer(t *testing.T) {
	env := newTestEnv(t)

	rr := get(t, env.server.Router(), "/docs/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "/docs/openapi.json")
}
