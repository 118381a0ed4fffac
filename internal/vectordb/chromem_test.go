package vectordb

import (
	"context"
	"strings"
	"testing"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// keywordEmbedder maps texts onto fixed axes so similarity is
// deterministic in tests.
type keywordEmbedder struct{}

func (keywordEmbedder) Name() string { return "keyword" }

func (keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		switch {
		case strings.Contains(text, "tree"):
			out[i] = []float32{1, 0, 0}
		case strings.Contains(text, "flower"):
			out[i] = []float32{0, 1, 0}
		default:
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

func (keywordEmbedder) CheckSetting(ctx context.Context) error { return nil }

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore(keywordEmbedder{}, "test-index", "")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return store
}

func seedDocuments(t *testing.T, store *ChromemStore) {
	t.Helper()
	err := store.AddDocuments(context.Background(), []Document{
		{ID: "a", Content: "how to plant a tree", Title: "Trees", URL: "https://docs/a", Metadata: map[string]string{"lang": "en"}},
		{ID: "b", Content: "watering a tree in summer", Title: "Watering"},
		{ID: "c", Content: "picking a flower", Title: "Flowers", Metadata: map[string]string{"lang": "fr"}},
	})
	if err != nil {
		t.Fatalf("adding documents: %v", err)
	}
}

func TestChromemSimilaritySearch(t *testing.T) {
	store := newTestStore(t)
	seedDocuments(t, store)

	results, err := store.SimilaritySearch(context.Background(), "tree care", 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if !strings.Contains(r.Document.Content, "tree") {
			t.Errorf("unexpected match %q for a tree query", r.Document.Content)
		}
	}
	// Title and URL come back out of the flattened metadata.
	if results[0].Document.Title == "" {
		t.Error("title lost on round trip")
	}
}

func TestChromemKClampedToCollectionSize(t *testing.T) {
	store := newTestStore(t)
	seedDocuments(t, store)

	results, err := store.SimilaritySearch(context.Background(), "tree", 50, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want the whole collection", len(results))
	}
}

func TestChromemMetadataFilter(t *testing.T) {
	store := newTestStore(t)
	seedDocuments(t, store)

	results, err := store.SimilaritySearch(context.Background(), "tree", 3, map[string]string{"lang": "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "a" {
		t.Fatalf("filter not applied, got %+v", results)
	}
	if results[0].Document.Metadata["lang"] != "en" {
		t.Errorf("extra metadata lost: %+v", results[0].Document.Metadata)
	}
}

func TestChromemEmptyCollection(t *testing.T) {
	store := newTestStore(t)

	results, err := store.SimilaritySearch(context.Background(), "anything", 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from an empty collection", len(results))
	}
}

func TestChromemRejectsInvalidK(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SimilaritySearch(context.Background(), "tree", 0, nil); err == nil {
		t.Error("expected an error for k=0")
	}
}

func TestChromemCheckSetting(t *testing.T) {
	store := newTestStore(t)
	seedDocuments(t, store)

	status, err := store.CheckSetting(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Valid {
		t.Error("expected a valid status")
	}
	if len(status.Metadata) != 1 || status.Metadata[0].Code != provider.MetadataVectorStoreDocumentCount {
		t.Fatalf("unexpected metadata: %+v", status.Metadata)
	}
	if status.Metadata[0].Value != 3 {
		t.Errorf("document count = %v, want 3", status.Metadata[0].Value)
	}
}
