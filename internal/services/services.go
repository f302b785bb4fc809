package services

import (
	"context"
	"sync"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/internal/infrastructure/gemini"
	"github.com/inkwell-labs/inkwell/internal/infrastructure/openai"
	"github.com/inkwell-labs/inkwell/internal/infrastructure/redis"
	"github.com/inkwell-labs/inkwell/internal/infrastructure/serpstack"
	"github.com/inkwell-labs/inkwell/internal/services/generation"
	"github.com/inkwell-labs/inkwell/internal/services/relay"
	"github.com/inkwell-labs/inkwell/internal/services/seo"
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.Mutex
)

type Services struct {
	aiProducer     *relay.Producer
	openAIProducer *relay.Producer
	redisService   *redis.Service
	seoService     *seo.Service
}

// InitializeServices wires every service from the environment. Missing
// vendor keys leave the matching backend out; requests then fail with a
// configuration error instead of the server refusing to start.
func InitializeServices(ctx context.Context) (*Services, error) {
	log := logger.For(logger.SERVICE)

	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	if config.UsingDefaultJWTSecret() {
		log.Warn().Msg("JWT_SECRET is not set - bearer tokens are verified with the public default secret")
	}

	// Initialize Redis service (optional)
	redisService := redis.NewService()

	var openAIBackend generation.Backend
	if b := generation.NewOpenAIBackend(openai.NewService()); b != nil {
		openAIBackend = b
	}

	primary := generation.NewGeminiBackends(gemini.NewService(ctx))
	if openAIBackend != nil {
		primary = append(primary, openAIBackend)
	}
	openAIOnly := []generation.Backend{openAIBackend}

	if config.UseStaticBackend() {
		log.Warn().Msg("Static generation backend enabled - no vendor will be called")
		primary = append(primary, generation.Static{})
		openAIOnly = append(openAIOnly, generation.StaticIncremental{})
	}

	delay := config.GetStreamWordDelay()
	aiProducer := relay.NewProducer(generation.NewChain("Gemini API key is missing", primary...), delay)
	openAIProducer := relay.NewProducer(generation.NewChain(
		"OpenAI API key is not configured. Please add OPENAI_API_KEY to your environment variables.",
		openAIOnly...,
	), delay)
	log.Info().
		Int("ai_variants", len(aiProducer.Chain().Backends())).
		Int("openai_variants", len(openAIProducer.Chain().Backends())).
		Msg("Initializing generation service")

	var searcher seo.Searcher
	if s := serpstack.NewService(); s != nil {
		searcher = s
	}
	seoService := seo.NewService(searcher, redisService, config.GetSEOCacheTTL())
	log.Info().Bool("configured", seoService.Configured()).Msg("Initializing SEO service")

	log.Info().Msg("All services initialized successfully")

	return &Services{
		aiProducer:     aiProducer,
		openAIProducer: openAIProducer,
		redisService:   redisService,
		seoService:     seoService,
	}, nil
}

// NewServices assembles a container from already built services
func NewServices(aiProducer, openAIProducer *relay.Producer, seoService *seo.Service, redisService *redis.Service) *Services {
	return &Services{
		aiProducer:     aiProducer,
		openAIProducer: openAIProducer,
		redisService:   redisService,
		seoService:     seoService,
	}
}

// GetAIProducer returns the producer behind /api/ai
func (s *Services) GetAIProducer() *relay.Producer {
	return s.aiProducer
}

// GetOpenAIProducer returns the producer behind /api/openai
func (s *Services) GetOpenAIProducer() *relay.Producer {
	return s.openAIProducer
}

// GetSEOService returns the SEO lookup service
func (s *Services) GetSEOService() *seo.Service {
	return s.seoService
}

// GetRedisService returns the optional Redis service, nil when not configured
func (s *Services) GetRedisService() *redis.Service {
	return s.redisService
}

// Close releases held connections
func (s *Services) Close() {
	log := logger.For(logger.SERVICE)

	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
