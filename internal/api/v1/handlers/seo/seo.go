package seo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/inkwell-labs/inkwell/internal/services/identity"
	"github.com/inkwell-labs/inkwell/internal/services/seo"
	"github.com/inkwell-labs/inkwell/pkg/httpext"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// Request is the body of an SEO lookup; at least one field is required
type Request struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword"`
}

// HandleLookup serves keyword SERP lookups and URL-only reports
func HandleLookup(seoService *seo.Service, w http.ResponseWriter, r *http.Request) {
	log := logger.For(logger.SEO)

	userID, ok := identity.CurrentUserID(r.Context())
	if !ok {
		httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	keyword := strings.TrimSpace(req.Keyword)
	url := strings.TrimSpace(req.URL)
	if keyword == "" && url == "" {
		httpext.JsonError(w, "URL or keyword is required", http.StatusBadRequest)
		return
	}

	if !seoService.Configured() {
		log.Error().Msg("SEO lookup requested without a SERPSTACK API key")
		httpext.JsonError(w, seo.ErrUnconfigured.Error(), http.StatusInternalServerError)
		return
	}

	if keyword == "" {
		httpext.JsonResponse(w, seoService.URLReport(url))
		return
	}

	report, err := seoService.KeywordReport(r.Context(), keyword)
	if err != nil {
		if errors.Is(err, seo.ErrUnconfigured) {
			httpext.JsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Error().Err(err).Str("user_id", userID).Str("keyword", keyword).Msg("SEO lookup failed")
		httpext.JsonErrorWithDetails(w, http.StatusInternalServerError, httpext.ErrorResponse{
			Error:   "Failed to fetch SEO data",
			Details: err.Error(),
		})
		return
	}

	log.Info().Str("user_id", userID).Str("keyword", keyword).Msg("SEO lookup served")
	httpext.JsonResponse(w, report)
}
