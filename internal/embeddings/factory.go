package embeddings

import (
	"fmt"
	"net/http"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// Factory resolves a declarative EM setting into a backend-calling
// Embedder. Resolution is pure dispatch over the provider tag.
type Factory struct {
	secrets provider.SecretResolver
	client  *http.Client
}

// NewFactory creates a factory. A nil resolver falls back to the env
// resolver; client bounds every HTTP-based embedder and may be nil.
func NewFactory(secrets provider.SecretResolver, client *http.Client) *Factory {
	if secrets == nil {
		secrets = provider.DefaultSecretResolver
	}
	return &Factory{secrets: secrets, client: client}
}

// Resolve builds the Embedder for the given setting.
func (f *Factory) Resolve(setting provider.EMSetting) (Embedder, error) {
	if err := setting.Validate(); err != nil {
		return nil, err
	}

	switch setting.Provider {
	case provider.EMOpenAI:
		apiKey, err := f.secrets.Resolve(setting.APIKey)
		if err != nil {
			return nil, fmt.Errorf("resolving openai api key: %w", err)
		}
		return NewOpenAIEmbedder(apiKey, setting.Model), nil

	case provider.EMAzureOpenAI:
		apiKey, err := f.secrets.Resolve(setting.APIKey)
		if err != nil {
			return nil, fmt.Errorf("resolving azure openai api key: %w", err)
		}
		return NewAzureOpenAIEmbedder(apiKey, setting.BaseURL, setting.DeploymentName, setting.APIVersion), nil

	case provider.EMOllama:
		return NewOllamaEmbedder(setting.BaseURL, setting.Model, f.client), nil

	default:
		return nil, provider.NewError(provider.KindUnknownProvider,
			string(setting.Provider), "resolve EM provider", nil)
	}
}
