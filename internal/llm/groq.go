package llm

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama-3.1-8b":  "llama-3.1-8b-instant",
	"llama-3.3-70b": "llama-3.3-70b-versatile",
	"llama3-8b":     "llama3-8b-8192",
}

// GroqProvider targets Groq's OpenAI-compatible endpoint. Groq models only
// support json_object output, so schemas travel in the system prompt and
// the reply is sanitized before validation.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL

	return &GroqProvider{OpenAIProvider: &OpenAIProvider{
		client:       openai.NewClientWithConfig(config),
		model:        resolveModel(cfg.Model, groqModels),
		strictSchema: false,
	}}, nil
}
