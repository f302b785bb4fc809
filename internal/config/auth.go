package config

import (
	"bytes"
	"sync"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. Anyone can mint tokens
// with it, so production deployments must override it.
const DefaultJWTSecret = "your-256-bit-secret"

var (
	jwtSecretMu sync.RWMutex
	// JWTSecret verifies the bearer tokens that identify dashboard users
	JWTSecret = []byte(GetEnvOrDefault("JWT_SECRET", DefaultJWTSecret))
)

// SetJWTSecret temporarily changes the JWT secret and returns a function to restore it
// This is primarily used for testing
func SetJWTSecret(secret []byte) func() {
	jwtSecretMu.Lock()
	previous := JWTSecret
	JWTSecret = secret
	jwtSecretMu.Unlock()

	return func() {
		jwtSecretMu.Lock()
		JWTSecret = previous
		jwtSecretMu.Unlock()
	}
}

// GetJWTSecret returns the current JWT secret in a thread-safe manner
func GetJWTSecret() []byte {
	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	return JWTSecret
}

// UsingDefaultJWTSecret reports whether tokens are verified with DefaultJWTSecret
func UsingDefaultJWTSecret() bool {
	return bytes.Equal(GetJWTSecret(), []byte(DefaultJWTSecret))
}
