package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/middleware"
	"github.com/deppfellow/geouser/internal/server"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

func (h *HealthHandler) recordHealthError(fields map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		fields["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", fields)
	}
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. The "store" check pings the connection behind the selected
// store driver.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"environment":  h.server.Config.Primary.Env,
		"store_driver": h.server.Config.Store.Driver,
		"interval":     cfg.Interval.String(),
		"checks":       checks,
	}

	isHealthy := true

	if cfg.Enabled && slices.Contains(cfg.Checks, "store") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
		defer cancel()

		storeStart := time.Now()
		if err := h.server.Ping(ctx); err != nil {
			isHealthy = false
			checks["store"] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(storeStart).String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check failed")

			h.recordHealthError(map[string]any{
				"check_type":       "store",
				"error_type":       "store_unhealthy",
				"store_driver":     h.server.Config.Store.Driver,
				"response_time_ms": time.Since(storeStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["store"] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(storeStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(storeStart)).
				Msg("store health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
