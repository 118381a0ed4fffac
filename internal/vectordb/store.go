package vectordb

import (
	"context"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// Store defines the interface for similarity search over an indexed
// document collection.
type Store interface {
	// SimilaritySearch returns up to k documents ranked by descending
	// relevance to the query. The filter, if non-nil, restricts results by
	// metadata equality and is forwarded to the backend opaquely.
	SimilaritySearch(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error)

	// CountDocuments returns the number of documents in the bound index.
	CountDocuments(ctx context.Context) (int, error)

	// CheckSetting probes the backend (document count plus a trivial
	// similarity search) to validate the bound setting.
	CheckSetting(ctx context.Context) (*provider.SettingStatus, error)

	// Name returns the provider tag of this store.
	Name() string
}

// Indexable is implemented by stores that can ingest documents in-process.
// The remote stores are populated by external indexing tools; the local
// chromem store supports direct ingestion for development and tests.
type Indexable interface {
	AddDocuments(ctx context.Context, docs []Document) error
}
