package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/aiproxy"
)

const (
	aiCORSAllowHeaders = "Content-Type, Authorization"
	aiCORSAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

// AIHandler relays editor requests to the AI provider.
type AIHandler struct {
	builder *aiproxy.Builder
	relay   *aiproxy.Relay
	logger  *slog.Logger
}

func NewAIHandler(log *slog.Logger, builder *aiproxy.Builder, relay *aiproxy.Relay) *AIHandler {
	return &AIHandler{
		builder: builder,
		relay:   relay,
		logger:  log.With(slog.String("handler", "ai")),
	}
}

func (h *AIHandler) Register(e *echo.Echo) {
	group := e.Group("/api/ai")
	group.POST("", h.Complete)
	group.OPTIONS("", h.Preflight)
	group.POST("/stream", h.Stream)
	group.OPTIONS("/stream", h.Preflight)
	group.GET("/ws", h.WebSocket)
}

// Preflight answers cross-origin preflight requests for the AI endpoints.
func (h *AIHandler) Preflight(c echo.Context) error {
	setAICORS(c)
	return c.NoContent(http.StatusNoContent)
}

// Complete godoc
// @Summary Non-streaming AI edit
// @Description Returns upstream JSON unchanged, or {"text": ...} when the upstream sent text or an event stream
// @Tags ai
// @Accept json
// @Produce json
// @Param request body aiproxy.EditRequest true "Edit request"
// @Success 200 {object} aiproxy.TextResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} aiproxy.ErrorResponse
// @Router /api/ai [post]
func (h *AIHandler) Complete(c echo.Context) error {
	setAICORS(c)
	if _, err := requireUserID(c); err != nil {
		return err
	}
	req, err := bindEditRequest(c)
	if err != nil {
		return err
	}
	payload := h.builder.Build(req, false)
	resp := h.relay.Complete(c.Request().Context(), payload)
	return c.JSONBlob(resp.StatusCode, resp.Body)
}

// Stream godoc
// @Summary Streaming AI edit
// @Description Server-sent events: content and reasoning fragments, then a final done event
// @Tags ai
// @Accept json
// @Produce text/event-stream
// @Param request body aiproxy.EditRequest true "Edit request"
// @Success 200 {object} aiproxy.ClientEvent
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/ai/stream [post]
func (h *AIHandler) Stream(c echo.Context) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}
	req, err := bindEditRequest(c)
	if err != nil {
		return err
	}
	writer, ok := aiproxy.NewEventWriter(c.Response())
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming not supported")
	}

	setAICORS(c)
	header := c.Response().Header()
	header.Set(echo.HeaderContentType, "text/event-stream; charset=utf-8")
	header.Set(echo.HeaderCacheControl, "no-cache")
	header.Set(echo.HeaderConnection, "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	payload := h.builder.Build(req, true)
	if err := h.relay.Stream(ctx, payload, writer.Write); err != nil {
		h.logger.Debug("ai stream finished with error", slog.Any("error", err))
	}
	return nil
}

func bindEditRequest(c echo.Context) (aiproxy.EditRequest, error) {
	var req aiproxy.EditRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

func setAICORS(c echo.Context) {
	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, "*")
	header.Set(echo.HeaderAccessControlAllowHeaders, aiCORSAllowHeaders)
	header.Set(echo.HeaderAccessControlAllowMethods, aiCORSAllowMethods)
}
