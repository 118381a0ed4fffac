package vectordb

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/provider"
)

// ChromemStore implements Store using the in-process chromem-go database.
// It is the development and test backend; production deployments point at
// OpenSearch or PGVector.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore opens (or creates) the named collection, optionally
// backed by a persistence directory.
func NewChromemStore(embedder embeddings.Embedder, index, persistPath string) (*ChromemStore, error) {
	var db *chromem.DB
	var err error
	if persistPath != "" {
		db, err = chromem.NewPersistentDB(persistPath, false)
		if err != nil {
			return nil, fmt.Errorf("opening chromem db at %s: %w", persistPath, err)
		}
	} else {
		db = chromem.NewDB()
	}

	col, err := db.GetOrCreateCollection(index, nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection %s: %w", index, err)
	}

	return &ChromemStore{db: db, collection: col}, nil
}

func (s *ChromemStore) Name() string { return string(provider.VectorStoreChromem) }

func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) SimilaritySearch(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	var where map[string]string
	if len(filter) > 0 {
		where = filter
	}

	results, err := s.collection.Query(ctx, query, k, where, nil)
	if err != nil {
		return nil, provider.NewError(provider.KindAPIGeneric, s.Name(), "similarity search",
			fmt.Errorf("chromem query: %w", err))
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			Document:   mapToDocument(r.ID, r.Content, r.Metadata),
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

func (s *ChromemStore) CountDocuments(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *ChromemStore) CheckSetting(ctx context.Context) (*provider.SettingStatus, error) {
	count, err := s.CountDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if _, err := s.SimilaritySearch(ctx, "what is a vector store?", 1, nil); err != nil {
			return nil, err
		}
	}
	return &provider.SettingStatus{
		Valid: true,
		Metadata: []provider.Metadata{
			{Code: provider.MetadataVectorStoreDocumentCount, Value: count},
		},
	}, nil
}

// metadataToMap flattens a document's title, url and extra metadata into the
// single map chromem stores per document.
func metadataToMap(doc Document) map[string]string {
	md := make(map[string]string, len(doc.Metadata)+2)
	for k, v := range doc.Metadata {
		md[k] = v
	}
	md["title"] = doc.Title
	if doc.URL != "" {
		md["url"] = doc.URL
	}
	return md
}

// mapToDocument rebuilds a Document from chromem's flat metadata map.
func mapToDocument(id, content string, md map[string]string) Document {
	doc := Document{
		ID:       id,
		Content:  content,
		Title:    md["title"],
		URL:      md["url"],
		Metadata: make(map[string]string),
	}
	for k, v := range md {
		if k == "title" || k == "url" {
			continue
		}
		doc.Metadata[k] = v
	}
	return doc
}
