package serpstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/rs/zerolog/log"
)

type Service struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewService returns nil when SERPSTACK_API_KEY is not configured
func NewService() *Service {
	key := config.GetSerpstackKey()
	if key == "" {
		log.Warn().Msg("Serpstack service not configured - SERPSTACK_API_KEY missing")
		return nil
	}
	return NewServiceWithConfig(key, config.GetSerpstackBaseURL())
}

func NewServiceWithConfig(accessKey, baseURL string) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		accessKey:  accessKey,
	}
}

// Search returns the raw serpstack response for a Google query
func (s *Service) Search(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("access_key", s.accessKey)
	params.Set("query", query)
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build serpstack request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpstack request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read serpstack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serpstack returned status %d", resp.StatusCode)
	}

	// serpstack reports API errors in a 200 body
	var envelope struct {
		Success *bool `json:"success"`
		Error   *struct {
			Code int    `json:"code"`
			Type string `json:"type"`
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid serpstack response: %w", err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("serpstack error %d (%s): %s", envelope.Error.Code, envelope.Error.Type, envelope.Error.Info)
	}

	return json.RawMessage(body), nil
}
