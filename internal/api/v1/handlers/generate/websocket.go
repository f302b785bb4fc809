package generate

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/inkwell-labs/inkwell/internal/services/generation"
	"github.com/inkwell-labs/inkwell/internal/services/relay"
	"github.com/inkwell-labs/inkwell/pkg/eventstream"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// identity comes from the bearer token, not cookies, so any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

const closeWait = time.Second

// HandleGenerateWebSocket relays one generation over a WebSocket. The request
// is taken from the query string; every frame is sent as one text message.
func HandleGenerateWebSocket(producer *relay.Producer, w http.ResponseWriter, r *http.Request) {
	if err := authorize(producer, r); err != nil {
		WriteError(w, err)
		return
	}

	body := Request{
		Prompt: r.URL.Query().Get("prompt"),
		Type:   r.URL.Query().Get("type"),
		Stream: true,
	}

	prompt, err := parsePrompt(&body)
	if err != nil {
		WriteError(w, err)
		return
	}

	log := logger.For(logger.HANDLER).With().Str("request_id", uuid.New().String()).Logger()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// the request context is detached from a hijacked connection; reading
	// until the peer closes is how a departed client is noticed
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ws := relay.NewWebSocketWriter(conn)
	if err := producer.Stream(ctx, ws, prompt); err != nil {
		classified := generation.Classify(generation.Provider{}, err)
		log.Error().Err(err).Str("kind", string(classified.Kind)).Msg("Generation failed before streaming started")
		if werr := ws.Send(eventstream.Failure(classified.Message)); werr != nil {
			log.Warn().Err(werr).Msg("Failed to write error marker")
		}
	}

	deadline := time.Now().Add(closeWait)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}
