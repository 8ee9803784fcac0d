package provider

import "fmt"

// Kind identifies a backend implementation.
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindOllama    Kind = "ollama"
)

// Config holds the settings needed to construct a backend.
type Config struct {
	Kind    Kind
	BaseURL string
	APIKey  string
}

// New creates a backend from configuration.
func New(cfg Config) (Backend, error) {
	switch cfg.Kind {
	case KindOpenAI:
		return NewOpenAIBackend(cfg.BaseURL, cfg.APIKey)
	case KindAnthropic:
		return NewAnthropicBackend(cfg.BaseURL, cfg.APIKey)
	case KindOllama:
		return NewOllamaBackend(cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Kind)
	}
}
