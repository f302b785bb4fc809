package config

import "time"

// GetSerpstackKey returns the serpstack access key, empty when unset
func GetSerpstackKey() string {
	return GetEnvOrDefault("SERPSTACK_API_KEY", "")
}

// GetSerpstackBaseURL returns the serpstack API root
func GetSerpstackBaseURL() string {
	return GetEnvOrDefault("SERPSTACK_BASE_URL", "http://api.serpstack.com")
}

// GetSEOCacheTTL is how long a keyword report is served from cache
func GetSEOCacheTTL() time.Duration {
	return parseEnvDuration("SEO_CACHE_TTL", time.Hour)
}
