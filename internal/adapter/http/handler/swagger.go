package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

const defaultDocsTitle = "Provider Bridge API"

// APIDocs serves the OpenAPI document and a Swagger UI page for it. The
// page title comes from the document's info block.
type APIDocs struct {
	spec  []byte
	title string
}

// NewAPIDocs parses spec just far enough to read its title and version.
// A nil spec yields docs that answer 404 for the document.
func NewAPIDocs(spec []byte) (*APIDocs, error) {
	d := &APIDocs{spec: spec, title: defaultDocsTitle}
	if spec == nil {
		return d, nil
	}

	var doc struct {
		Info struct {
			Title   string `yaml:"title"`
			Version string `yaml:"version"`
		} `yaml:"info"`
	}
	if err := yaml.Unmarshal(spec, &doc); err != nil {
		return nil, fmt.Errorf("parsing openapi document: %w", err)
	}
	if doc.Info.Title != "" {
		d.title = doc.Info.Title
	}
	if doc.Info.Version != "" {
		d.title += " " + doc.Info.Version
	}
	return d, nil
}

// Spec serves the raw OpenAPI YAML.
func (d *APIDocs) Spec(c *gin.Context) {
	if d.spec == nil {
		c.String(http.StatusNotFound, "OpenAPI document not loaded")
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", d.spec)
}

// UI serves a Swagger UI page that loads the document from the sibling
// /spec route of wherever the page is mounted.
func (d *APIDocs) UI(c *gin.Context) {
	specURL := c.FullPath() + "/spec"
	if c.FullPath() == "" {
		specURL = c.Request.URL.Path + "/spec"
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: %q, dom_id: '#swagger-ui', layout: 'BaseLayout',
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset]});
  </script>
</body>
</html>`, html.EscapeString(d.title), specURL)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
