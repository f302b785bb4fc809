package generation

import (
	"strings"
)

// Style selects the system instruction a prompt is generated under
type Style string

const (
	StyleGeneral Style = "content"
	StyleBlog    Style = "blog"
	StyleSocial  Style = "social"
	StyleAd      Style = "ad"
)

// ParseStyle maps a request type to a Style. An empty value is the general style.
func ParseStyle(value string) (Style, bool) {
	switch Style(strings.ToLower(strings.TrimSpace(value))) {
	case "", StyleGeneral:
		return StyleGeneral, true
	case StyleBlog:
		return StyleBlog, true
	case StyleSocial:
		return StyleSocial, true
	case StyleAd:
		return StyleAd, true
	default:
		return "", false
	}
}

// Prompt is the input handed to a backend
type Prompt struct {
	Text  string
	Style Style
}

// Usage is the token accounting reported by a backend, when it reports one
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the canonical shape every backend response is normalised into
type Result struct {
	Text    string
	Usage   *Usage
	Backend string
}
