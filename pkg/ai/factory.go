package ai

import (
	"fmt"

	"tabsy-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	// OpenAI config
	OpenAIAPIKey string
	OpenAIModel  string

	// Gemini config
	GeminiAPIKey string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewService creates a Service based on the config. This is the factory
// function - switch AI provider by changing config.Provider.
func NewService(cfg Config) (Service, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil

	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return gemini.NewGeminiService(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// Auto: prefer OpenAI, then Gemini, then a local Ollama.
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
		}
		if cfg.GeminiAPIKey != "" {
			return gemini.NewGeminiService(cfg.GeminiAPIKey), nil
		}
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	}
}
