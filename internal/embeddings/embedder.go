package embeddings

import "context"

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// CheckSetting performs a lightweight live probe (a trivial embed) to
	// validate the bound setting. Failures are reported as provider
	// taxonomy errors.
	CheckSetting(ctx context.Context) error

	// Name returns the name/identifier of the embedding model.
	Name() string
}
