package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err   error
	calls int
}

func (f *fakePinger) Ping(context.Context) error {
	f.calls++
	return f.err
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		want       HealthResponse
	}{
		{"memory fallback", nil, http.StatusOK, HealthResponse{Status: "ok", Redis: "disabled"}},
		{"redis reachable", &fakePinger{}, http.StatusOK, HealthResponse{Status: "ok", Redis: "ok"}},
		{"redis down", &fakePinger{err: errors.New("dial tcp: connection refused")}, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Redis: "unreachable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleHealth(tt.pinger, w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.want, got)
			if p, ok := tt.pinger.(*fakePinger); ok {
				assert.Equal(t, 1, p.calls)
			}
		})
	}
}
