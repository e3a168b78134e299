package aiproxy

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"strings"
)

// EmitFunc receives client events in upstream order. A non-nil error
// means the downstream is gone and the stream must stop.
type EmitFunc func(ClientEvent) error

// ErrDownstreamGone reports that emit failed and the session was abandoned.
var ErrDownstreamGone = errors.New("downstream disconnected")

// Stream opens a long-lived upstream connection for payload and emits one
// or two events per upstream line as it arrives. Unless the downstream
// fails or ctx is cancelled, exactly one done event is emitted last, even
// when the upstream could not be reached or broke mid-stream. The returned
// error is for logging; the session outcome is always carried by emit.
func (r *Relay) Stream(ctx context.Context, payload ChatPayload, emit EmitFunc) error {
	payload.Stream = true
	err := r.readUpstream(ctx, payload, emit)
	if errors.Is(err, ErrDownstreamGone) || ctx.Err() != nil {
		r.logger.Debug("stream abandoned", slog.Any("error", err))
		return err
	}
	if err != nil {
		r.logger.Warn("upstream stream ended with error", slog.String("url", r.providerURL), slog.Any("error", err))
	}
	if emitErr := emit(DoneEvent()); emitErr != nil {
		return errors.Join(err, ErrDownstreamGone)
	}
	return err
}

func (r *Relay) readUpstream(ctx context.Context, payload ChatPayload, emit EmitFunc) error {
	httpReq, err := r.newRequest(ctx, payload, "text/event-stream")
	if err != nil {
		return err
	}
	resp, err := r.streamingClient.Do(httpReq)
	if err != nil {
		r.logger.Error("upstream stream connect failed", slog.String("url", r.providerURL), slog.Any("error", err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// the body is still relayed; providers often explain the failure inline
		r.logger.Warn("upstream stream returned error status", slog.String("url", r.providerURL), slog.Int("status", resp.StatusCode))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	for scanner.Scan() {
		data, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if data == doneMarker {
			return nil
		}
		for _, ev := range r.chunkEvents(data) {
			if err := emit(ev); err != nil {
				return errors.Join(ErrDownstreamGone, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseLine extracts the data payload of one upstream line. Lines without
// a data prefix are treated as data; blank lines, comments and other SSE
// fields are skipped.
func parseLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}
	// Other SSE fields are dropped rather than forwarded as raw content.
	for _, field := range []string{"event:", "id:", "retry:"} {
		if strings.HasPrefix(line, field) {
			return "", false
		}
	}
	if !strings.HasPrefix(line, "data:") {
		line = "data: " + line
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "" {
		return "", false
	}
	return data, true
}

// chunkEvents maps a raw chunk to events, forwarding it verbatim as
// content when it is not a chat-completion delta.
func (r *Relay) chunkEvents(data string) []ClientEvent {
	chunk, err := decodeChunk(data)
	if err != nil {
		r.logChunkError(data, err)
		return []ClientEvent{{Event: EventContent, Data: data}}
	}
	return chunk.events()
}
