package config

// GetGeminiKey returns the Gemini API key, empty when unset
func GetGeminiKey() string {
	return GetEnvOrDefault("GEMINI_API_KEY", "")
}

// GetGeminiModels returns the Gemini models tried in order
func GetGeminiModels() []string {
	return parseEnvList("GEMINI_MODELS", []string{"gemini-2.5-flash", "gemini-1.5-flash"})
}
