package generate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/internal/services/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsServer(producer *relay.Producer, signedIn bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if signedIn {
			r = r.WithContext(identity.WithUserID(r.Context(), "user-1"))
		}
		HandleGenerateWebSocket(producer, w, r)
	}))
}

func readFrames(t *testing.T, conn *websocket.Conn) []string {
	t.Helper()
	var frames []string
	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return frames
		}
		assert.Equal(t, websocket.TextMessage, mt)
		frames = append(frames, string(msg))
	}
}

func TestHandleGenerateWebSocket(t *testing.T) {
	server := wsServer(newProducer(fakeBackend{text: "Fly Further Today"}), true)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"?prompt=tagline&type=ad", nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, []string{
		"data: {\"content\":\"Fly\",\"done\":false}\n\n",
		"data: {\"content\":\" Further\",\"done\":false}\n\n",
		"data: {\"content\":\" Today\",\"done\":false}\n\n",
		"data: {\"done\":true}\n\n",
	}, readFrames(t, conn))
}

func TestHandleGenerateWebSocketRejectsBeforeUpgrade(t *testing.T) {
	server := wsServer(newProducer(fakeBackend{text: "x"}), false)
	defer server.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"?prompt=hi", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleGenerateWebSocketFailureMarker(t *testing.T) {
	server := wsServer(newProducer(fakeBackend{err: assert.AnError}), true)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"?prompt=hi", nil)
	require.NoError(t, err)
	defer conn.Close()

	frames := readFrames(t, conn)
	require.Len(t, frames, 1)
	assert.Equal(t, "data: {\"error\":\""+assert.AnError.Error()+"\",\"done\":true}\n\n", frames[0])
}
