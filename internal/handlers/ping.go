package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/version"
)

// PingHandler serves the unauthenticated liveness endpoints.
type PingHandler struct{}

func NewPingHandler() *PingHandler {
	return &PingHandler{}
}

func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/ping", h.Ping)
	e.HEAD("/health", h.Health)
}

// PingResponse reports liveness and the running build.
type PingResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// Ping godoc
// @Summary Liveness probe
// @Tags system
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (h *PingHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, PingResponse{
		Status:  "ok",
		Version: version.Version,
		Commit:  version.Commit,
	})
}

// Health answers load balancer HEAD probes with an empty 200.
func (h *PingHandler) Health(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
