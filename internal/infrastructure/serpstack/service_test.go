package serpstack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "ai marketing", r.URL.Query().Get("query"))
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		fmt.Fprint(w, `{"request":{"success":true},"organic_results":[{"position":1,"title":"AI"}]}`)
	}))
	defer srv.Close()

	data, err := NewServiceWithConfig("key", srv.URL).Search(context.Background(), "ai marketing")
	require.NoError(t, err)
	assert.Contains(t, string(data), "organic_results")
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"API error in body", http.StatusOK, `{"success":false,"error":{"code":101,"type":"invalid_access_key","info":"bad key"}}`},
		{"Non-2xx status", http.StatusBadGateway, `oops`},
		{"Invalid JSON", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewServiceWithConfig("key", srv.URL).Search(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}
