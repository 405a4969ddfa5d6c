package llm

import (
	"fmt"

	"github.com/castrovroberto/prophet/internal/config"
)

// NewClient builds the client for the configured provider.
func NewClient(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, nil), nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.BaseURL, cfg.KeepAlive, nil), nil
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm: gemini provider requires an API key")
		}
		return NewGeminiClient(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}
