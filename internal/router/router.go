// Package router builds the Echo router.
//
// It registers the middleware chain and the global error handler and maps
// route groups to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/handler"
	"github.com/deppfellow/geouser/internal/middleware"
	"github.com/deppfellow/geouser/internal/server"
)

// NewRouter returns the Echo instance serving every route.
//
// Middleware order: RequestID and the New Relic transaction first so
// tracing and the request logger can read them, rate limiting after logging
// so rejected requests are still logged.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerUserRoutes(router, h)

	return router
}
