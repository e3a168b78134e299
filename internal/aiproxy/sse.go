package aiproxy

import (
	"bufio"
	"net/http"
	"strings"
)

// EventWriter frames client events as server-sent events and flushes
// each one immediately.
type EventWriter struct {
	writer  *bufio.Writer
	flusher http.Flusher
}

func NewEventWriter(w http.ResponseWriter) (*EventWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	return &EventWriter{writer: bufio.NewWriter(w), flusher: flusher}, true
}

// Write emits "event: <name>" followed by one data line per line of the
// payload and a blank line.
func (w *EventWriter) Write(ev ClientEvent) error {
	if _, err := w.writer.WriteString(FormatEvent(ev)); err != nil {
		return err
	}
	if err := w.writer.Flush(); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// FormatEvent renders ev in event-stream framing. Multi-line payloads are
// split across data lines on any of "\r\n", "\r" or "\n"; clients
// reassemble them with "\n".
func FormatEvent(ev ClientEvent) string {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(ev.Event)
	b.WriteByte('\n')
	for _, line := range strings.Split(lineBreaks.Replace(ev.Data), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}
