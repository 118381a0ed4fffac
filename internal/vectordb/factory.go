package vectordb

import (
	"fmt"

	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/provider"
)

// Factory resolves a declarative vector store setting into a Store bound to
// one index. Resolution is pure dispatch over the provider tag; no network
// calls happen until the store is used.
type Factory struct {
	secrets provider.SecretResolver
}

// NewFactory creates a factory. A nil resolver falls back to the env resolver.
func NewFactory(secrets provider.SecretResolver) *Factory {
	if secrets == nil {
		secrets = provider.DefaultSecretResolver
	}
	return &Factory{secrets: secrets}
}

// Resolve builds the Store for the given setting, bound to index. The
// embedder turns query text into vectors for backends that search by
// vector directly.
func (f *Factory) Resolve(setting provider.VectorStoreSetting, index string, embedder embeddings.Embedder) (Store, error) {
	if err := setting.Validate(); err != nil {
		return nil, err
	}
	if index == "" {
		return nil, fmt.Errorf("document index name is required")
	}

	switch setting.Provider {
	case provider.VectorStoreChromem:
		return NewChromemStore(embedder, index, setting.PersistPath)

	case provider.VectorStoreOpenSearch:
		password, err := f.secrets.Resolve(setting.Password)
		if err != nil {
			return nil, fmt.Errorf("resolving opensearch password: %w", err)
		}
		return NewOpenSearchStore(setting, password, embedder, index)

	case provider.VectorStorePGVector:
		table := setting.Table
		if table == "" {
			table = index
		}
		return NewPGVectorStore(setting.ConnString, embedder, table)

	default:
		return nil, provider.NewError(provider.KindUnknownProvider,
			string(setting.Provider), "resolve vector store provider", nil)
	}
}
