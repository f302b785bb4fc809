package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/inkwell-labs/inkwell/pkg/httpext"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of /healthz
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
}

// HandleHealth reports whether the service and its Redis store are reachable.
// A nil redis means the in-memory fallback is in use.
func HandleHealth(redis Pinger, w http.ResponseWriter, r *http.Request) {
	if redis == nil {
		httpext.JsonResponse(w, HealthResponse{Status: "ok", Redis: "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := redis.Ping(ctx); err != nil {
		log := logger.For(logger.HANDLER)
		log.Error().Err(err).Msg("Health check failed to reach Redis")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "degraded", Redis: "unreachable"})
		return
	}

	httpext.JsonResponse(w, HealthResponse{Status: "ok", Redis: "ok"})
}
