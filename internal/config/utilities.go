package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell/pkg/logger"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func parseEnvInt(key string, defaultValue int) int {
	log := logger.For(logger.CONFIG)

	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer in environment, using default")
		return defaultValue
	}

	return parsed
}

func parseEnvDuration(key string, defaultValue time.Duration) time.Duration {
	log := logger.For(logger.CONFIG)

	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(val)
	if err != nil || parsed < 0 {
		log.Warn().Str("key", key).Dur("default", defaultValue).Msg("Invalid duration in environment, using default")
		return defaultValue
	}

	return parsed
}

func parseEnvList(key string, defaultValue []string) []string {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	result := make([]string, 0)
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}
