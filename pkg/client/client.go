// Package client consumes the generation relay: it submits requests, reads the
// frame stream back into Content and reports progress through an Emitter.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/inkwell-labs/inkwell/pkg/eventstream"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// Routes served by the relay
const (
	RouteAI     = "/api/ai"
	RouteOpenAI = "/api/openai"
	RouteSEO    = "/api/serpstack"
)

// Request is one generation submission
type Request struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type,omitempty"`
	Stream bool   `json:"stream"`
}

type completeResponse struct {
	Content string          `json:"content"`
	Usage   json.RawMessage `json:"usage,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	HelpURL string `json:"helpUrl,omitempty"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithDialer replaces websocket.DefaultDialer
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// New returns a client for the relay at baseURL, authenticating with the
// bearer token when it is not empty
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
		dialer:     websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate submits req to route. Streamed requests are consumed frame by
// frame; others complete in one step. Failures are returned as *Failure,
// apart from cancellation and errors reaching the server.
func (c *Client) Generate(ctx context.Context, route string, req Request, emitter Emitter) (Content, error) {
	if emitter == nil {
		emitter = NopEmitter{}
	}

	resp, err := c.post(ctx, route, req)
	if err != nil {
		return Content{}, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		f := readFailure(resp)
		content := Content{Err: f}
		emitter.Errored(content, f)
		return content, f
	}

	if isEventStream(resp.Header.Get("Content-Type")) {
		return Consume(ctx, resp.Body, emitter)
	}

	defer resp.Body.Close()
	var body completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		f := &Failure{Kind: KindBackend, Message: "Invalid response from server", Details: err.Error(), Status: resp.StatusCode}
		content := Content{Err: f}
		emitter.Errored(content, f)
		return content, f
	}

	content := Content{Text: body.Content, IsComplete: true}
	emitter.Completed(content)
	return content, nil
}

// SEO looks up keyword, or describes url when keyword is empty, and returns
// the raw report
func (c *Client) SEO(ctx context.Context, keyword, url string) (json.RawMessage, error) {
	resp, err := c.post(ctx, RouteSEO, map[string]string{"keyword": keyword, "url": url})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readFailure(resp)
	}

	var report json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding SEO report: %w", err)
	}
	return report, nil
}

func (c *Client) post(ctx context.Context, route string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", eventstream.ContentType+", application/json")
	c.authorize(httpReq.Header)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request to %s: %w", route, err)
	}
	return resp, nil
}

func (c *Client) authorize(h http.Header) {
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
}

// readFailure decodes the JSON error body of a rejected request
func readFailure(resp *http.Response) *Failure {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		log := logger.For(logger.CLIENT)
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("Failed to read error response")
	}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return statusFailure(resp.StatusCode, strings.TrimSpace(string(raw)), "", "")
	}
	return statusFailure(resp.StatusCode, body.Error, body.Details, body.HelpURL)
}

func isEventStream(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == eventstream.ContentType
}
