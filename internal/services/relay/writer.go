package relay

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/inkwell-labs/inkwell/pkg/eventstream"
)

// EventWriter carries encoded events to one consumer
type EventWriter interface {
	Send(e eventstream.Event) error
}

var errNoFlusher = errors.New("response writer does not support flushing")

// SSEWriter writes frames to an HTTP response. Headers are committed on the
// first Send, so the response stays free for a JSON error until then.
type SSEWriter struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	requestID string
	committed bool
}

func NewSSEWriter(w http.ResponseWriter, requestID string) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errNoFlusher
	}
	return &SSEWriter{w: w, flusher: flusher, requestID: requestID}, nil
}

// Committed reports whether the status line has been written
func (s *SSEWriter) Committed() bool {
	return s.committed
}

func (s *SSEWriter) Send(e eventstream.Event) error {
	frame, err := eventstream.Encode(e)
	if err != nil {
		return err
	}

	if !s.committed {
		h := s.w.Header()
		h.Set("Content-Type", eventstream.ContentType)
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		if s.requestID != "" {
			h.Set("X-Request-Id", s.requestID)
		}
		s.w.WriteHeader(http.StatusOK)
		s.committed = true
	}

	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WebSocketWriter sends each frame as one text message
type WebSocketWriter struct {
	conn *websocket.Conn
}

func NewWebSocketWriter(conn *websocket.Conn) *WebSocketWriter {
	return &WebSocketWriter{conn: conn}
}

func (ws *WebSocketWriter) Send(e eventstream.Event) error {
	frame, err := eventstream.Encode(e)
	if err != nil {
		return err
	}
	return ws.conn.WriteMessage(websocket.TextMessage, frame)
}
