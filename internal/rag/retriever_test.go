package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

func TestRetrieveTruncatesToK(t *testing.T) {
	// The backend over-returns; the retriever caps at k.
	store := &fakeStore{Results: storeResults(5)}

	docs, err := Retrieve(context.Background(), store, "pruning", SearchParams{K: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Errorf("got %d documents, want 3", len(docs))
	}
	// Descending relevance order is preserved.
	if docs[0].Metadata.ID != "doc-1" || docs[2].Metadata.ID != "doc-3" {
		t.Errorf("order not preserved: %s .. %s", docs[0].Metadata.ID, docs[2].Metadata.ID)
	}
}

func TestRetrieveMapsMetadata(t *testing.T) {
	store := &fakeStore{Results: storeResults(1)}
	store.Results[0].Document.Metadata = map[string]string{"lang": "en"}

	docs, err := Retrieve(context.Background(), store, "pruning", SearchParams{K: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := docs[0]
	if doc.Content != "chunk 1" {
		t.Errorf("content = %q", doc.Content)
	}
	if doc.Metadata.ID != "doc-1" || doc.Metadata.Title != "Gardening 1" || doc.Metadata.URL != "https://docs/1" {
		t.Errorf("metadata not mapped: %+v", doc.Metadata)
	}
	if doc.Metadata.Extra["lang"] != "en" {
		t.Errorf("extra metadata not forwarded: %+v", doc.Metadata.Extra)
	}
}

func TestRetrieveForwardsFilter(t *testing.T) {
	store := &fakeStore{}
	filter := map[string]string{"source": "faq"}

	_, err := Retrieve(context.Background(), store, "pruning", SearchParams{K: 2, Filter: filter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Filters[0]["source"] != "faq" {
		t.Errorf("filter not forwarded: %+v", store.Filters[0])
	}
}

func TestRetrieveRejectsInvalidK(t *testing.T) {
	store := &fakeStore{Results: storeResults(1)}

	for _, k := range []int{0, -1} {
		if _, err := Retrieve(context.Background(), store, "pruning", SearchParams{K: k}); err == nil {
			t.Errorf("k=%d: expected an error", k)
		}
	}
	if len(store.Queries) != 0 {
		t.Error("invalid params must not reach the backend")
	}
}

func TestRetrievePropagatesStoreError(t *testing.T) {
	store := &fakeStore{Err: provider.NewError(provider.KindConnection, "opensearch", "similarity search", errors.New("refused"))}

	_, err := Retrieve(context.Background(), store, "pruning", SearchParams{K: 2})
	if !provider.IsKind(err, provider.KindConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
}
