package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
)

// GenerateWebSocket streams req over the WebSocket variant of route. Each
// message carries one frame; the messages are read back as one byte stream so
// the same reassembly applies as over HTTP.
func (c *Client) GenerateWebSocket(ctx context.Context, route string, req Request, emitter Emitter) (Content, error) {
	if emitter == nil {
		emitter = NopEmitter{}
	}

	u, err := url.Parse(c.baseURL + route + "/ws")
	if err != nil {
		return Content{}, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("prompt", req.Prompt)
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	u.RawQuery = q.Encode()

	header := http.Header{}
	c.authorize(header)

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusSwitchingProtocols {
			defer resp.Body.Close()
			f := readFailure(resp)
			content := Content{Err: f}
			emitter.Errored(content, f)
			return content, f
		}
		return Content{}, err
	}

	return Consume(ctx, &messageReader{conn: conn}, emitter)
}

// messageReader reads the messages of a WebSocket as one continuous stream.
// A normal close from the peer reads as io.EOF.
type messageReader struct {
	conn    *websocket.Conn
	current io.Reader
}

func (m *messageReader) Read(p []byte) (int, error) {
	for {
		if m.current == nil {
			_, r, err := m.conn.NextReader()
			if err != nil {
				// a peer that hangs up without a close frame ends the stream too
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) ||
					errors.Is(err, io.EOF) {
					return 0, io.EOF
				}
				return 0, err
			}
			m.current = r
		}

		n, err := m.current.Read(p)
		if errors.Is(err, io.EOF) {
			m.current = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (m *messageReader) Close() error {
	return m.conn.Close()
}
