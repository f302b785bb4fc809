package openai

import (
	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type Service struct {
	client *openai.Client
	model  string
}

// NewService returns nil when OPENAI_API_KEY is not configured
func NewService() *Service {
	key := config.GetOpenAIKey()
	if key == "" {
		log.Warn().Msg("OpenAI service not configured - OPENAI_API_KEY missing")
		return nil
	}

	return NewServiceWithConfig(key, config.GetOpenAIBaseURL(), config.GetOpenAIModel())
}

// NewServiceWithConfig builds the client explicitly; baseURL may be empty
func NewServiceWithConfig(key, baseURL, model string) *Service {
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	log.Info().Str("model", model).Msg("Initialising OpenAI service")

	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Service) GetClient() *openai.Client {
	return s.client
}

func (s *Service) Model() string {
	return s.model
}
