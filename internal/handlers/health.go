package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/healthcheck"
)

type HealthHandler struct {
	runner *healthcheck.Runner
	logger *slog.Logger
}

func NewHealthHandler(log *slog.Logger, runner *healthcheck.Runner) *HealthHandler {
	return &HealthHandler{
		runner: runner,
		logger: log.With(slog.String("handler", "health")),
	}
}

func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/ready", h.Ready)
}

// Ready godoc
// @Summary Readiness probe
// @Description Runs database and AI provider checks; answers 503 when any check fails
// @Tags system
// @Success 200 {object} healthcheck.Report
// @Failure 503 {object} healthcheck.Report
// @Router /ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	report := h.runner.Run(c.Request().Context())
	status := http.StatusOK
	if report.Status == healthcheck.StatusError {
		h.logger.Warn("readiness check failed", slog.Any("checks", report.Checks))
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, report)
}
