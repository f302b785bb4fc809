package config

import (
	"time"

	"github.com/inkwell-labs/inkwell/pkg/logger"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	log := logger.For(logger.CONFIG)

	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "false") == "true"

	configs := map[string]RateLimitConfig{
		"generate": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_GENERATE", 30), // 30 generations per minute
			Window:  time.Minute,
		},
		"seo": {
			Enabled: enabled,
			MaxHits: parseEnvInt("RATELIMIT_SEO", 20), // 20 lookups per minute
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	log.Warn().Str("key", key).Msg("No rate limit config found")
	return RateLimitConfig{Enabled: false}
}
