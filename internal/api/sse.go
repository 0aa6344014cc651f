package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sseHandler serves the event-stream endpoint. The stream opens with an
// `endpoint` event naming the session-scoped message-posting path, then
// emits keep-alive comments on a fixed interval until the client
// disconnects.
type sseHandler struct {
	keepAlive time.Duration
	logger    *slog.Logger
}

// sseWriter wraps an http.ResponseWriter for SSE streaming.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newSSEWriter creates an SSE writer and sets appropriate headers.
func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support flusher interface")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	return &sseWriter{w: w, flusher: flusher}, nil
}

// writeEvent sends a named event, prefixing each data line per the SSE spec.
func (w *sseWriter) writeEvent(event, data string) error {
	if _, err := fmt.Fprintf(w.w, "event: %s\n", event); err != nil {
		return fmt.Errorf("write event name: %w", err)
	}
	for _, line := range strings.Split(data, "\n") {
		if _, err := fmt.Fprintf(w.w, "data: %s\n", line); err != nil {
			return fmt.Errorf("write data line: %w", err)
		}
	}
	if _, err := w.w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write terminator: %w", err)
	}
	w.flusher.Flush()
	return nil
}

// writeComment sends a comment line, the SSE-native keep-alive signal.
func (w *sseWriter) writeComment(text string) error {
	if _, err := fmt.Fprintf(w.w, ": %s\n\n", text); err != nil {
		return fmt.Errorf("write comment: %w", err)
	}
	w.flusher.Flush()
	return nil
}

func (h *sseHandler) handle(w http.ResponseWriter, r *http.Request) {
	sw, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Session ids exist for client-side correlation only; the dispatcher
	// behind /messages is stateless.
	sessionID := uuid.New().String()
	endpoint := "/messages?sessionId=" + sessionID

	if err := sw.writeEvent("endpoint", endpoint); err != nil {
		h.logger.Debug("sse endpoint event failed", "error", err, "session_id", sessionID)
		return
	}
	h.logger.Debug("sse stream opened", "session_id", sessionID)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("sse stream closed", "session_id", sessionID)
			return
		case <-ticker.C:
			if err := sw.writeComment("keepalive"); err != nil {
				h.logger.Debug("sse keepalive failed", "error", err, "session_id", sessionID)
				return
			}
		}
	}
}
