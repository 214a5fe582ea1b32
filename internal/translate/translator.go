package translate

import (
	"context"
	"fmt"
)

// Translator converts text between languages. Implementations must be safe to
// call sequentially; nothing in this tool calls them concurrently.
type Translator interface {
	// Translate returns text rendered from the source language into the
	// target language. Language tags are BCP 47 (e.g. "zh-CN", "en").
	Translate(ctx context.Context, text, source, target string) (string, error)

	// Name returns the provider name
	Name() string
}

// ServiceError is returned when the translation service itself fails: network
// errors, API errors, empty responses.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s translation service: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Config holds common configuration for translation providers
type Config struct {
	Provider string // Provider name: "openai" or "gemini"
	Model    string // Provider-specific model, "" for the provider default

	OpenAIKey string
	GeminiKey string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: "openai",
	}
}

// NewTranslator creates the appropriate translation provider based on configuration
func NewTranslator(cfg *Config) (Translator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(cfg), nil

	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}
}
