package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwell-labs/inkwell/internal/services/generation"
	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/internal/services/relay"
	"github.com/inkwell-labs/inkwell/pkg/httpext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text string
	err  error
}

func (f fakeBackend) Name() string { return "fake" }

func (f fakeBackend) Generate(context.Context, generation.Prompt) (generation.Result, error) {
	if f.err != nil {
		return generation.Result{}, f.err
	}
	return generation.Result{Text: f.text, Usage: &generation.Usage{TotalTokens: 3}}, nil
}

func newProducer(backends ...generation.Backend) *relay.Producer {
	return relay.NewProducer(generation.NewChain("Gemini API key is missing", backends...), 0)
}

func newRequest(body string, signedIn bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/ai", strings.NewReader(body))
	if signedIn {
		req = req.WithContext(identity.WithUserID(req.Context(), "user-1"))
	}
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httpext.ErrorResponse {
	t.Helper()
	var body httpext.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestHandleGenerateRejections(t *testing.T) {
	tests := []struct {
		name       string
		producer   *relay.Producer
		body       string
		signedIn   bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "no backend configured",
			producer:   newProducer(),
			body:       `{"prompt":"hi"}`,
			signedIn:   true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Gemini API key is missing",
		},
		{
			name:       "anonymous",
			producer:   newProducer(fakeBackend{text: "x"}),
			body:       `{"prompt":"hi"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "malformed json",
			producer:   newProducer(fakeBackend{text: "x"}),
			body:       `{"prompt":`,
			signedIn:   true,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "missing prompt",
			producer:   newProducer(fakeBackend{text: "x"}),
			body:       `{"type":"blog"}`,
			signedIn:   true,
			wantStatus: http.StatusBadRequest,
			wantError:  "Prompt is required",
		},
		{
			name:       "blank prompt",
			producer:   newProducer(fakeBackend{text: "x"}),
			body:       `{"prompt":"   ","stream":true}`,
			signedIn:   true,
			wantStatus: http.StatusBadRequest,
			wantError:  "Prompt is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleGenerate(tt.producer, w, newRequest(tt.body, tt.signedIn))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w).Error)
		})
	}
}

func TestHandleGenerateUnknownType(t *testing.T) {
	w := httptest.NewRecorder()
	HandleGenerate(newProducer(fakeBackend{text: "x"}), w, newRequest(`{"prompt":"hi","type":"poem"}`, true))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "Invalid request")
}

func TestHandleGenerateComplete(t *testing.T) {
	w := httptest.NewRecorder()
	HandleGenerate(newProducer(fakeBackend{text: "Fly Further Today"}), w, newRequest(`{"prompt":"tagline","type":"AD"}`, true))

	require.Equal(t, http.StatusOK, w.Code)
	var body Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Fly Further Today", body.Content)
	assert.True(t, body.Success)
	require.NotNil(t, body.Usage)
	assert.Equal(t, 3, body.Usage.TotalTokens)
}

func TestHandleGenerateStream(t *testing.T) {
	w := httptest.NewRecorder()
	HandleGenerate(newProducer(fakeBackend{text: "Fly Further Today"}), w, newRequest(`{"prompt":"tagline","stream":true}`, true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t,
		"data: {\"content\":\"Fly\",\"done\":false}\n\n"+
			"data: {\"content\":\" Further\",\"done\":false}\n\n"+
			"data: {\"content\":\" Today\",\"done\":false}\n\n"+
			"data: {\"done\":true}\n\n",
		w.Body.String())
}

func TestHandleGenerateQuotaBeforeStream(t *testing.T) {
	quota := generation.Classify(generation.ProviderOpenAI, errors.New("You exceeded your current quota"))

	for _, stream := range []bool{false, true} {
		w := httptest.NewRecorder()
		body := `{"prompt":"hi","stream":false}`
		if stream {
			body = `{"prompt":"hi","stream":true}`
		}
		HandleGenerate(newProducer(fakeBackend{err: quota}), w, newRequest(body, true))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		errBody := decodeError(t, w)
		assert.Equal(t, "OpenAI API quota exceeded. Please check your plan and billing details.", errBody.Error)
		assert.Equal(t, generation.ProviderOpenAI.BillingURL, errBody.HelpURL)
		assert.Equal(t, "You exceeded your current quota", errBody.Details)
	}
}

func TestHandleGenerateFallsBack(t *testing.T) {
	w := httptest.NewRecorder()
	producer := newProducer(fakeBackend{err: errors.New("model not found")}, fakeBackend{text: "second"})
	HandleGenerate(producer, w, newRequest(`{"prompt":"hi","stream":true}`, true))

	assert.Equal(t, "data: {\"content\":\"second\",\"done\":false}\n\ndata: {\"done\":true}\n\n", w.Body.String())
}
