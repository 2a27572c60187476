package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/server"
)

// DocsHandler serves the interactive API reference UI.
type DocsHandler struct {
	Handler
}

// NewDocsHandler constructs a DocsHandler.
func NewDocsHandler(s *server.Server) *DocsHandler {
	return &DocsHandler{
		Handler: NewHandler(s),
	}
}

// docsPage loads the reference UI from a CDN and points it at the OpenAPI
// document served from /static.
const docsPage = `<!DOCTYPE html>
<html>
  <head>
    <title>Pressroom API Reference</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="/static/openapi.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`

// ServeDocsUI serves the reference UI. Caching is disabled so doc updates
// appear immediately during development.
func (h *DocsHandler) ServeDocsUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTML(http.StatusOK, docsPage)
}
