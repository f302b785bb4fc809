package config

import (
	"strconv"
	"time"
)

// GetListenAddr returns the address the HTTP server binds to
func GetListenAddr() string {
	return ":" + GetEnvOrDefault("PORT", "8080")
}

// GetStreamWordDelay is the pause between simulated word fragments
func GetStreamWordDelay() time.Duration {
	return parseEnvDuration("STREAM_WORD_DELAY", 20*time.Millisecond)
}

// UseStaticBackend enables the deterministic local generation backend
func UseStaticBackend() bool {
	enabled, _ := strconv.ParseBool(GetEnvOrDefault("INKWELL_STATIC_BACKEND", "false"))
	return enabled
}
