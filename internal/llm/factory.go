package llm

import (
	"fmt"
	"net/http"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// Factory resolves a declarative LLM setting into a backend-calling
// Provider. Resolution is pure dispatch over the provider tag; no network
// calls happen until the handle is used.
type Factory struct {
	secrets provider.SecretResolver
	client  *http.Client
}

// NewFactory creates a factory. A nil resolver falls back to the env
// resolver; client bounds every HTTP-based provider and may be nil.
func NewFactory(secrets provider.SecretResolver, client *http.Client) *Factory {
	if secrets == nil {
		secrets = provider.DefaultSecretResolver
	}
	return &Factory{secrets: secrets, client: client}
}

// Resolve builds the Provider for the given setting.
func (f *Factory) Resolve(setting provider.LLMSetting) (Provider, error) {
	if err := setting.Validate(); err != nil {
		return nil, err
	}

	switch setting.Provider {
	case provider.LLMOpenAI:
		apiKey, err := f.secrets.Resolve(setting.APIKey)
		if err != nil {
			return nil, fmt.Errorf("resolving openai api key: %w", err)
		}
		return NewOpenAIProvider(apiKey, setting.Model, setting.Temperature), nil

	case provider.LLMAzureOpenAI:
		apiKey, err := f.secrets.Resolve(setting.APIKey)
		if err != nil {
			return nil, fmt.Errorf("resolving azure openai api key: %w", err)
		}
		return NewAzureOpenAIProvider(apiKey, setting.BaseURL, setting.DeploymentName,
			setting.APIVersion, setting.Temperature), nil

	case provider.LLMOllama:
		return NewOllamaProvider(setting.BaseURL, setting.Model, f.client), nil

	case provider.LLMHuggingFaceTGI:
		return NewHuggingFaceTGIProvider(setting.BaseURL, setting.Temperature, f.client), nil

	default:
		return nil, provider.NewError(provider.KindUnknownProvider,
			string(setting.Provider), "resolve LLM provider", nil)
	}
}
