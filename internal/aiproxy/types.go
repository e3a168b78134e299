package aiproxy

import "time"

// Mode selects how an EditRequest is turned into a user message.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeRewrite  Mode = "rewrite"
	ModeContinue Mode = "continue"
	ModeOutline  Mode = "outline"
)

// Client event names.
const (
	EventContent   = "content"
	EventReasoning = "reasoning"
	EventDone      = "done"
	doneMarker     = "[DONE]"
)

// EditRequest is the editor's request to the AI endpoints.
type EditRequest struct {
	Mode      string `json:"mode"`
	Prompt    string `json:"prompt"`
	FullText  string `json:"html"`
	Selection string `json:"selection"`
	Context   string `json:"context,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatPayload is the chat-completion request sent upstream.
type ChatPayload struct {
	Model       string    `json:"model,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	Stream      bool      `json:"stream"`
}

// ClientEvent is one normalized event sent downstream.
type ClientEvent struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

// DoneEvent is the terminal event of every streaming session.
func DoneEvent() ClientEvent {
	return ClientEvent{Event: EventDone, Data: doneMarker}
}

// Response is a normalized non-streaming reply; Body is encoded JSON.
type Response struct {
	StatusCode int
	Body       []byte
}

type TextResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Config is resolved once at startup and shared read-only by all requests.
type Config struct {
	ProviderURL  string
	APIKey       string
	Model        string
	SystemPrompt string
	Temperature  float64
	TopP         float64
	Timeout      time.Duration
}
