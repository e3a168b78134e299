package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/aiproxy"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocket godoc
// @Summary Streaming AI edit over WebSocket
// @Description Send one EditRequest message; receive ClientEvent messages ending with done
// @Tags ai
// @Param token query string true "Bearer token"
// @Router /api/ai/ws [get]
func (h *AIHandler) WebSocket(c echo.Context) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return nil
	}
	defer conn.Close()

	var req aiproxy.EditRequest
	if err := conn.ReadJSON(&req); err != nil {
		h.logger.Debug("websocket closed before request", slog.Any("error", err))
		return nil
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// The reader only watches for the client going away; any further
	// message is ignored.
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("websocket read failed", slog.Any("error", err))
				}
				return
			}
		}
	}()

	sink := newWSSink(conn)
	stopPing := sink.keepAlive(ctx)
	defer stopPing()

	if err := h.relay.Stream(ctx, h.builder.Build(req, true), sink.write); err != nil {
		h.logger.Debug("websocket stream finished with error", slog.Any("error", err))
		return nil
	}
	sink.close()
	return nil
}

// wsSink writes stream events as JSON text messages. WriteControl may run
// concurrently with WriteJSON, so the ping loop needs no lock.
type wsSink struct {
	conn *websocket.Conn
}

func newWSSink(conn *websocket.Conn) *wsSink {
	return &wsSink{conn: conn}
}

func (s *wsSink) write(ev aiproxy.ClientEvent) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteJSON(ev)
}

func (s *wsSink) close() {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteWait))
}

func (s *wsSink) keepAlive(ctx context.Context) func() {
	ticker := time.NewTicker(wsPingPeriod)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}()
	return func() { close(done) }
}
