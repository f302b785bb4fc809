package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	infraopenai "github.com/inkwell-labs/inkwell/internal/infrastructure/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIBackend(t *testing.T, handler http.HandlerFunc) *OpenAIBackend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIBackend(infraopenai.NewServiceWithConfig("test-key", srv.URL+"/v1", "gpt-3.5-turbo"))
}

func TestOpenAIBackendGenerate(t *testing.T) {
	backend := newOpenAIBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		messages := body["messages"].([]any)
		require.Len(t, messages, 2)
		assert.Equal(t, StyleAd.Instruction(), messages[0].(map[string]any)["content"])
		assert.Equal(t, "Write a tagline", messages[1].(map[string]any)["content"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Fly Further Today"}}],"usage":{"prompt_tokens":12,"completion_tokens":3,"total_tokens":15}}`)
	})

	res, err := backend.Generate(context.Background(), Prompt{Text: "Write a tagline", Style: StyleAd})
	require.NoError(t, err)
	assert.Equal(t, "Fly Further Today", res.Text)
	require.NotNil(t, res.Usage)
	assert.Equal(t, 15, res.Usage.TotalTokens)
	assert.Equal(t, "openai:gpt-3.5-turbo", backend.Name())
}

func TestOpenAIBackendQuotaError(t *testing.T) {
	backend := newOpenAIBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`)
	})

	_, err := backend.Generate(context.Background(), Prompt{Text: "x"})

	var classified *Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindQuota, classified.Kind)
	assert.Equal(t, http.StatusTooManyRequests, classified.Status())
}

func TestOpenAIBackendEmptyChoices(t *testing.T) {
	backend := newOpenAIBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","choices":[]}`)
	})

	_, err := backend.Generate(context.Background(), Prompt{Text: "x"})

	var classified *Error
	require.ErrorAs(t, err, &classified)
	assert.Equal(t, KindBackend, classified.Kind)
}

func TestOpenAIBackendGenerateIncremental(t *testing.T) {
	backend := newOpenAIBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Fly", " Further", "", " Today"} {
			fmt.Fprintf(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var parts []string
	for part, err := range backend.GenerateIncremental(context.Background(), Prompt{Text: "Write a tagline"}) {
		require.NoError(t, err)
		parts = append(parts, part)
	}
	assert.Equal(t, []string{"Fly", " Further", " Today"}, parts)
}

func TestOpenAIBackendIncrementalOpenFailure(t *testing.T) {
	backend := newOpenAIBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	})

	var errs []error
	for part, err := range backend.GenerateIncremental(context.Background(), Prompt{Text: "x"}) {
		assert.Empty(t, part)
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	var classified *Error
	require.ErrorAs(t, errs[0], &classified)
	assert.Equal(t, KindCredentials, classified.Kind)
}

func TestNewOpenAIBackendNilService(t *testing.T) {
	assert.Nil(t, NewOpenAIBackend(nil))
}
