package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/bookboard/internal/middleware"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/storage"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a "system" endpoint that uptime monitors and load
// balancers use to verify the service is alive and its resource files are usable.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and per-file checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (books_store, messages_store)
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	for _, name := range h.server.Config.Observability.HealthChecks.Checks {
		file := h.checkTarget(name)
		if file == nil {
			continue
		}

		checkStart := time.Now()
		err := h.ping(c.Request().Context(), file)
		elapsed := time.Since(checkStart)

		if err != nil {
			isHealthy = false
			checks[name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(name, name+"_unhealthy", map[string]interface{}{
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError("overall", "overall_unhealthy", map[string]interface{}{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// checkTarget maps a configured check name to the file it covers.
func (h *HealthHandler) checkTarget(name string) *storage.File {
	switch name {
	case "books_store":
		return h.server.Storage.Books
	case "messages_store":
		return h.server.Storage.Messages
	default:
		return nil
	}
}

func (h *HealthHandler) ping(ctx context.Context, file *storage.File) error {
	timeout := h.server.Config.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = storage.PingTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return file.Ping(ctx)
}

// recordHealthCheckError records a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordHealthCheckError(checkType, errorType string, attrs map[string]interface{}) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	event := map[string]interface{}{
		"check_type": checkType,
		"operation":  "health_check",
		"error_type": errorType,
	}
	for k, v := range attrs {
		event[k] = v
	}
	app.RecordCustomEvent("HealthCheckError", event)
}
