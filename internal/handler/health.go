package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/shoe-rental/internal/middleware"
	"github.com/deppfellow/shoe-rental/internal/server"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings the configured dependencies.
//
// A database failure answers 503. Redis only carries background email, so
// a Redis failure is reported as "degraded" with a 200.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	observability := h.server.Config.Observability
	timeout := observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultHealthCheckTimeout
	}

	if observability.HealthCheckEnabled("database") && h.server.DB != nil {
		result := h.runCheck(c.Request().Context(), "database", timeout, h.server.DB.Pool.Ping)
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if observability.HealthCheckEnabled("redis") && h.server.Redis != nil {
		result := h.runCheck(c.Request().Context(), "redis", timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = result
		if result.Status != "healthy" && response.Status == "healthy" {
			response.Status = "degraded"
		}
	}

	if response.Status == "unhealthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(parent context.Context, name string, timeout time.Duration, ping func(context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	logger := h.server.Logger.With().Str("check_type", name).Logger()

	start := time.Now()
	err := ping(ctx)
	took := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("response_time", took).Msg("health check failed")
		h.recordFailure(name, map[string]any{
			"response_time_ms": took.Milliseconds(),
			"error_message":    err.Error(),
		})
		return checkResult{Status: "unhealthy", ResponseTime: took.String(), Error: err.Error()}
	}

	logger.Debug().Dur("response_time", took).Msg("health check passed")
	return checkResult{Status: "healthy", ResponseTime: took.String()}
}

func (h *HealthHandler) recordFailure(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	attrs["error_type"] = checkType + "_unhealthy"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
