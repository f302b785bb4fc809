package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.CurrentUserID(r.Context())
		_, _ = w.Write([]byte(userID))
	})
}

func TestIdentify(t *testing.T) {
	restore := config.SetJWTSecret([]byte("test-secret"))
	defer restore()

	token, err := identity.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"bearer header", "Bearer " + token, "", "user-42"},
		{"query parameter", "", "?access_token=" + token, "user-42"},
		{"no token", "", "", ""},
		{"invalid token", "Bearer not-a-jwt", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ai/ws"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			Identify(echoUser()).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitWith(t *testing.T) {
	limited := RateLimitWith("generate", true, ratelimit.NewLimiter(time.Minute, 2))(echoUser())

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/ai", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1236"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"), "other clients keep their own budget")
}

func TestRateLimitWithDisabledAndFailOpen(t *testing.T) {
	for _, h := range []http.Handler{
		RateLimitWith("seo", false, ratelimit.NewLimiter(time.Minute, 0))(echoUser()),
		RateLimitWith("seo", true, failingLimiter{})(echoUser()),
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/serpstack", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "ip:192.0.2.1", clientKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "ip:203.0.113.9", clientKey(req))

	req = req.WithContext(identity.WithUserID(req.Context(), "u1"))
	assert.Equal(t, "user:u1", clientKey(req))
}
