package aiproxy

import (
	"fmt"
	"strings"
)

const contextChars = 1000

// Builder turns editor requests into chat payloads. It holds no mutable
// state and is safe for concurrent use.
type Builder struct {
	systemPrompt string
	model        string
	temperature  float64
	topP         float64
}

func NewBuilder(cfg Config) *Builder {
	prompt := cfg.SystemPrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultSystemPrompt
	}
	return &Builder{
		systemPrompt: prompt,
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		topP:         cfg.TopP,
	}
}

// SystemPrompt returns the prompt prepended to every payload.
func (b *Builder) SystemPrompt() string {
	return b.systemPrompt
}

// Build never fails; unknown modes fall back to prompt, then full text.
func (b *Builder) Build(req EditRequest, stream bool) ChatPayload {
	return ChatPayload{
		Model: b.model,
		Messages: []Message{
			{Role: "system", Content: b.systemPrompt},
			{Role: "user", Content: UserMessage(req)},
		},
		Temperature: b.temperature,
		TopP:        b.topP,
		Stream:      stream,
	}
}

// UserMessage renders the user turn for the request's mode.
func UserMessage(req EditRequest) string {
	switch Mode(req.Mode) {
	case ModeGenerate:
		return req.Prompt
	case ModeRewrite:
		return fmt.Sprintf("Перепиши фрагмент: %s\n\nИнструкция: %s", req.Selection, req.Prompt)
	case ModeContinue:
		ctx := req.Context
		if ctx == "" {
			ctx = lastChars(req.FullText, contextChars)
		}
		return fmt.Sprintf("Продолжи текст: %s\n\nИнструкция: %s", ctx, req.Prompt)
	case ModeOutline:
		return fmt.Sprintf("Составь план документа на основе:\n%s\n\nИнструкция: %s", firstChars(req.FullText, contextChars), req.Prompt)
	default:
		if req.Prompt != "" {
			return req.Prompt
		}
		return req.FullText
	}
}

// lastChars keeps the final n code points of s.
func lastChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// firstChars keeps the first n code points of s.
func firstChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
