package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/handler"
)

// registerSystemRoutes registers endpoints that are not business logic:
// the health endpoint for load balancers and monitors, the docs UI, and
// the static assets it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	// Serves openapi.json and any future docs assets.
	r.Static("/static", "static")

	r.GET("/docs", h.Docs.ServeDocsUI)
}
