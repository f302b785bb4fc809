package config

// GetOpenAIKey returns the OpenAI API key, empty when unset
func GetOpenAIKey() string {
	return GetEnvOrDefault("OPENAI_API_KEY", "")
}

// GetOpenAIModel returns the chat model used for generation
func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo")
}

// GetOpenAIBaseURL returns an optional override of the API endpoint
func GetOpenAIBaseURL() string {
	return GetEnvOrDefault("OPENAI_BASE_URL", "")
}
