package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

const (
	docsYAMLPath = "/docs/openapi.yaml"
	docsJSONPath = "/docs/openapi.json"
	swaggerDist  = "https://unpkg.com/swagger-ui-dist@5"
)

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}} docs</title>
<link rel="stylesheet" href="{{.Dist}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.Dist}}/swagger-ui-bundle.js"></script>
<script>
window.onload = () => SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui", deepLinking: true });
</script>
</body>
</html>`))

// SwaggerHandler serves the API document and a Swagger UI page for it.
// All three bodies are prepared once at construction.
type SwaggerHandler struct {
	page     []byte
	specYAML []byte
	specJSON []byte
}

// NewSwaggerHandler prepares docs for a YAML OpenAPI document
func NewSwaggerHandler(title string, specYAML []byte) (*SwaggerHandler, error) {
	specJSON, err := yamlToJSON(specYAML)
	if err != nil {
		return nil, fmt.Errorf("converting openapi spec: %w", err)
	}

	var page bytes.Buffer
	err = docsPage.Execute(&page, map[string]string{
		"Title":   title,
		"Dist":    swaggerDist,
		"SpecURL": docsJSONPath,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering docs page: %w", err)
	}

	return &SwaggerHandler{
		page:     page.Bytes(),
		specYAML: specYAML,
		specJSON: specJSON,
	}, nil
}

// RegisterRoutes registers docs routes
func (h *SwaggerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/docs", serveBytes("text/html; charset=utf-8", h.page))
	r.Get(docsYAMLPath, serveBytes("application/x-yaml", h.specYAML))
	r.Get(docsJSONPath, serveBytes("application/json", h.specJSON))
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(body)
	}
}

// yamlToJSON re-encodes a YAML document as JSON. Mapping keys must be strings.
func yamlToJSON(in []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
