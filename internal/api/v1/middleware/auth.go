package middleware

import (
	"net/http"

	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// Identify attaches the user of a valid bearer token to the request context.
// Requests without one pass through anonymously; handlers decide whether an
// identity is required. WebSocket clients that cannot set headers may send
// the token as the access_token query parameter.
func Identify(next http.Handler) http.Handler {
	log := logger.For(logger.MIDDLEWARE)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := identity.ExtractToken(r)
		if tokenString == "" {
			tokenString = r.URL.Query().Get("access_token")
		}
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := identity.ValidateToken(tokenString)
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Ignoring invalid bearer token")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
	})
}
