package rag

import (
	"context"

	"github.com/ziadkadry99/ragserver/internal/vectordb"
)

// Retrieve wraps a vector store as a similarity search over
// RetrievedDocuments. Results are ordered by descending relevance and
// truncated to at most params.K regardless of how many the backend
// returns; scores are not exposed. The filter is forwarded opaquely.
func Retrieve(ctx context.Context, store vectordb.Store, query string, params SearchParams) ([]RetrievedDocument, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	results, err := store.SimilaritySearch(ctx, query, params.K, params.Filter)
	if err != nil {
		return nil, err
	}

	if len(results) > params.K {
		results = results[:params.K]
	}

	docs := make([]RetrievedDocument, len(results))
	for i, r := range results {
		docs[i] = RetrievedDocument{
			Content: r.Document.Content,
			Metadata: DocumentMetadata{
				ID:    r.Document.ID,
				Title: r.Document.Title,
				URL:   r.Document.URL,
				Extra: r.Document.Metadata,
			},
		}
	}

	return docs, nil
}
