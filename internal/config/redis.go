package config

import (
	"github.com/inkwell-labs/inkwell/pkg/logger"
)

func GetRedisURL() string {
	log := logger.For(logger.CONFIG)

	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		log.Debug().Msg("REDIS_URL not set")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
