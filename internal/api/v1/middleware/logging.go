package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/inkwell-labs/inkwell/internal/metrics"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// RequestLogger logs every request and records its latency. It does not wrap
// the ResponseWriter so flushing and hijacking keep working.
func RequestLogger(next http.Handler) http.Handler {
	log := logger.For(logger.MIDDLEWARE)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		metrics.RequestLatency.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", r.RemoteAddr).
			Dur("duration", elapsed).
			Msg("Request handled")
	})
}
