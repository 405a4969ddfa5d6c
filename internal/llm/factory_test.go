package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castrovroberto/prophet/internal/config"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(config.LLMConfig{Provider: config.ProviderOpenAI})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
	assert.Equal(t, DefaultOpenAIBaseURL, c.(*OpenAIClient).baseURL)

	c, err = NewClient(config.LLMConfig{Provider: config.ProviderOllama, BaseURL: "http://ollama:11434/"})
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434", c.(*OllamaClient).baseURL)

	c, err = NewClient(config.LLMConfig{Provider: config.ProviderGemini, APIKey: "key"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, c)

	_, err = NewClient(config.LLMConfig{Provider: config.ProviderGemini})
	assert.Error(t, err)

	_, err = NewClient(config.LLMConfig{Provider: "anthropic"})
	assert.ErrorContains(t, err, "unsupported provider")
}
