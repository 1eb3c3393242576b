package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the
// users API: greeting, health, docs and static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Root.Welcome)

	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
