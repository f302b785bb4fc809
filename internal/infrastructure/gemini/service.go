package gemini

import (
	"context"
	"net/http"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type Service struct {
	client *genai.Client
	models []string
}

// NewService returns nil when GEMINI_API_KEY is not configured or the client cannot be built
func NewService(ctx context.Context) *Service {
	key := config.GetGeminiKey()
	if key == "" {
		log.Warn().Msg("Gemini service not configured - GEMINI_API_KEY missing")
		return nil
	}

	svc, err := NewServiceWithConfig(ctx, key, "", config.GetGeminiModels())
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Gemini client")
		return nil
	}
	return svc
}

// NewServiceWithConfig builds the client explicitly; baseURL may be empty
func NewServiceWithConfig(ctx context.Context, key, baseURL string, models []string) (*Service, error) {
	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: http.DefaultClient,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	log.Info().Strs("models", models).Msg("Initialising Gemini service")

	return &Service{client: client, models: models}, nil
}

func (s *Service) Models() *genai.Models {
	return s.client.Models
}

// ModelNames returns the configured model variants in fallback order
func (s *Service) ModelNames() []string {
	return s.models
}
