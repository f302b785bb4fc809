package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/infrastructure/redis"
	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/pkg/httpext"
	"github.com/inkwell-labs/inkwell/pkg/logger"
	"github.com/inkwell-labs/inkwell/pkg/ratelimit"
)

// RateLimit limits requests per user, or per client address for anonymous
// requests. Limits are shared through Redis when it is available.
func RateLimit(limitKey string, redisService *redis.Service) func(http.Handler) http.Handler {
	cfg := config.GetRateLimitConfig(limitKey)

	var limiter ratelimit.Allower
	if redisService != nil {
		limiter = ratelimit.NewWindowLimiter(redisService, limitKey, cfg.Window, cfg.MaxHits)
	} else {
		limiter = ratelimit.NewLimiter(cfg.Window, cfg.MaxHits)
	}

	return RateLimitWith(limitKey, cfg.Enabled, limiter)
}

// RateLimitWith is RateLimit with an explicit limiter
func RateLimitWith(limitKey string, enabled bool, limiter ratelimit.Allower) func(http.Handler) http.Handler {
	log := logger.For(logger.MIDDLEWARE)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := clientKey(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("limit", limitKey).Msg("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				log.Warn().Str("client", key).Str("limit", limitKey).Msg("Rate limit exceeded")
				httpext.JsonError(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := identity.CurrentUserID(r.Context()); ok {
		return "user:" + userID
	}

	// Use X-Forwarded-For if behind proxy, otherwise remote address
	ip := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	if ip == "" {
		ip = r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
	}
	return "ip:" + ip
}
