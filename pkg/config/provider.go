package config

import (
	"fmt"

	"github.com/entrhq/courtbook/pkg/llm/openai"
)

// BuildProvider creates the LLM provider for the semantic executor from the
// resolved LLM settings. Replies are requested as JSON objects with a fixed
// temperature so page decisions stay repeatable.
func BuildProvider(c LLMConfig) (*openai.Provider, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("API key is required. Set %s environment variable, use -api-key flag, or configure llm.api_key in ~/.courtbook/config.yaml", EnvOpenAIKey)
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []openai.ProviderOption{
		openai.WithModel(model),
		openai.WithResponseFormat(openai.ResponseFormatJSONObject),
		openai.WithTemperature(0),
	}
	if c.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(c.BaseURL))
	}

	provider, err := openai.NewProvider(c.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	return provider, nil
}
