// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/handler"
	"github.com/pressroomhq/pressroom/internal/middleware"
	"github.com/pressroomhq/pressroom/internal/server"
)

// New builds the Echo instance: global middleware in order, the global
// error handler, system routes, and the authenticated /api/v1 group.
func New(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: request id first so every later middleware can
	// correlate, then tracing so the transaction exists before the
	// context enhancer reads it.
	e.Use(middleware.RequestID())
	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.CORS())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, mw)

	return e
}

// registerAPIRoutes wires the business endpoints. Everything under
// /api/v1 requires authentication and is rate limited per user.
func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := e.Group("/api/v1", mw.Auth.RequireAuth, mw.RateLimit.Limit())

	articles := api.Group("/articles")
	articles.GET("", handler.Handle(h.Articles.Handler, h.Articles.List, http.StatusOK))
	articles.POST("", handler.Handle(h.Articles.Handler, h.Articles.Create, http.StatusCreated))
	articles.GET("/mine", handler.Handle(h.Articles.Handler, h.Articles.Mine, http.StatusOK))
	articles.GET("/:id", handler.Handle(h.Articles.Handler, h.Articles.Get, http.StatusOK))
	articles.PUT("/:id", handler.Handle(h.Articles.Handler, h.Articles.Update, http.StatusOK))
	articles.PATCH("/:id", handler.Handle(h.Articles.Handler, h.Articles.Patch, http.StatusOK))
	articles.DELETE("/:id", handler.HandleNoContent(h.Articles.Handler, h.Articles.Delete, http.StatusNoContent))
	articles.POST("/:id/publish", handler.Handle(h.Articles.Handler, h.Articles.Publish, http.StatusOK))

	trials := api.Group("/trials")
	trials.GET("", handler.Handle(h.Trials.Handler, h.Trials.List, http.StatusOK))
	trials.GET("/:id", handler.Handle(h.Trials.Handler, h.Trials.Get, http.StatusOK))

	tags := api.Group("/tags")
	tags.GET("", handler.Handle(h.Tags.Handler, h.Tags.List, http.StatusOK))
	tags.POST("", handler.Handle(h.Tags.Handler, h.Tags.Create, http.StatusCreated))
}
