package aiproxy

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// chatChunk is the subset of a chat-completion (delta) object we read.
type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content          string `json:"content"`
			ReasoningContent string `json:"reasoning_content"`
		} `json:"delta"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func decodeChunk(data string) (chatChunk, error) {
	var chunk chatChunk
	err := json.Unmarshal([]byte(data), &chunk)
	return chunk, err
}

// firstText picks delta content, then delta reasoning, then message content.
func (c chatChunk) firstText() string {
	if len(c.Choices) == 0 {
		return ""
	}
	choice := c.Choices[0]
	if choice.Delta.Content != "" {
		return choice.Delta.Content
	}
	if choice.Delta.ReasoningContent != "" {
		return choice.Delta.ReasoningContent
	}
	return choice.Message.Content
}

// events maps one chunk to client events: reasoning before content.
func (c chatChunk) events() []ClientEvent {
	if len(c.Choices) == 0 {
		return nil
	}
	delta := c.Choices[0].Delta
	var out []ClientEvent
	if delta.ReasoningContent != "" {
		out = append(out, ClientEvent{Event: EventReasoning, Data: delta.ReasoningContent})
	}
	if delta.Content != "" {
		out = append(out, ClientEvent{Event: EventContent, Data: delta.Content})
	}
	return out
}

// isFormatError reports whether err means the chunk was not a
// chat-completion object, as opposed to a decoder fault.
func isFormatError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (r *Relay) logChunkError(data string, err error) {
	if isFormatError(err) {
		r.logger.Debug("forwarding unparsable chunk as text", slog.String("chunk_prefix", truncate(data, 120)))
		return
	}
	r.logger.Error("unexpected chunk decode failure", slog.String("chunk_prefix", truncate(data, 120)), slog.Any("error", err))
}
