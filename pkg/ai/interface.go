package ai

import "context"

// Service is the boundary to the conversational LLM. The system composes a
// prompt string and receives free text back; no streaming, no tool calls,
// no retry policy beyond surfacing failure.
// Implement this interface to add new providers (OpenAI, Gemini, Ollama...).
type Service interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
