package aiproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 120 * time.Second

// Relay forwards chat payloads to the upstream provider.
type Relay struct {
	providerURL     string
	apiKey          string
	logger          *slog.Logger
	httpClient      *http.Client
	streamingClient *http.Client
}

// NewRelay creates a Relay. Non-streaming calls are bounded by
// cfg.Timeout; streaming calls have no timeout and end only when the
// upstream closes or the caller's context is cancelled.
func NewRelay(log *slog.Logger, cfg Config) *Relay {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Relay{
		providerURL:     strings.TrimSpace(cfg.ProviderURL),
		apiKey:          strings.TrimSpace(cfg.APIKey),
		logger:          log.With(slog.String("service", "ai_relay")),
		httpClient:      &http.Client{Timeout: timeout},
		streamingClient: &http.Client{},
	}
}

// Complete sends payload and normalizes whatever comes back into JSON.
// Network failures become a 502 with an error body; it never returns an
// error itself.
func (r *Relay) Complete(ctx context.Context, payload ChatPayload) Response {
	httpReq, err := r.newRequest(ctx, payload, "application/json")
	if err != nil {
		return errorResponse(err)
	}
	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		r.logger.Error("upstream request failed", slog.String("url", r.providerURL), slog.Any("error", err))
		return errorResponse(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Error("upstream body read failed", slog.String("url", r.providerURL), slog.Any("error", err))
		return errorResponse(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.logger.Warn("upstream returned error status", slog.Int("status", resp.StatusCode), slog.String("body_prefix", truncate(string(raw), 300)))
	}
	return r.normalize(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
}

// normalize applies, in order: JSON pass-through, SSE reassembly, raw text.
func (r *Relay) normalize(status int, contentType string, raw []byte) Response {
	if json.Valid(raw) {
		if !isJSONContentType(contentType) {
			r.logger.Debug("upstream sent JSON without JSON content type", slog.String("content_type", contentType))
		}
		return Response{StatusCode: status, Body: raw}
	}

	text := string(raw)
	if strings.Contains(text, "data:") {
		r.logger.Debug("upstream streamed a non-streaming request, reassembling")
		return textResponse(http.StatusOK, r.collectSSE(text))
	}
	return textResponse(status, text)
}

// collectSSE concatenates the deltas of an event-stream body up to [DONE].
func (r *Relay) collectSSE(text string) string {
	var acc strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == doneMarker {
			break
		}
		chunk, err := decodeChunk(data)
		if err != nil {
			r.logChunkError(data, err)
			acc.WriteString(data)
			continue
		}
		acc.WriteString(chunk.firstText())
	}
	return acc.String()
}

func (r *Relay) newRequest(ctx context.Context, payload ChatPayload, accept string) (*http.Request, error) {
	if r.providerURL == "" {
		return nil, fmt.Errorf("ai provider url is not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.providerURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)
	if r.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
	return httpReq, nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func textResponse(status int, text string) Response {
	body, _ := json.Marshal(TextResponse{Text: text})
	return Response{StatusCode: status, Body: body}
}

func errorResponse(err error) Response {
	body, _ := json.Marshal(ErrorResponse{Error: err.Error()})
	return Response{StatusCode: http.StatusBadGateway, Body: body}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
