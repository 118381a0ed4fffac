package vectordb

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/provider"
)

// embeddingField is the k-NN vector field name used by the indexing tools.
const embeddingField = "embedding"

// OpenSearchStore implements Store against an OpenSearch k-NN index. The
// query text is embedded with the bound embedder before the search.
type OpenSearchStore struct {
	client   *opensearch.Client
	embedder embeddings.Embedder
	index    string
}

// NewOpenSearchStore connects to the cluster described by the setting and
// binds it to the given index. Clusters commonly run with self-signed
// certificates, so verification is disabled as in the indexing tools.
func NewOpenSearchStore(setting provider.VectorStoreSetting, password string, embedder embeddings.Embedder, index string) (*OpenSearchStore, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: []string{fmt.Sprintf("https://%s:%d", setting.Host, setting.Port)},
		Username:  setting.Username,
		Password:  password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating opensearch client: %w", err)
	}

	return &OpenSearchStore{client: client, embedder: embedder, index: index}, nil
}

func (s *OpenSearchStore) Name() string { return string(provider.VectorStoreOpenSearch) }

// osSource is the indexed document shape.
type osSource struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

type osSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Score  float32  `json:"_score"`
			Source osSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *OpenSearchStore) SimilaritySearch(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, provider.NewError(provider.KindAPIGeneric, s.Name(), "similarity search",
			fmt.Errorf("embedder returned no vector for query"))
	}

	knn := map[string]any{
		"knn": map[string]any{
			embeddingField: map[string]any{
				"vector": vectors[0],
				"k":      k,
			},
		},
	}

	var queryClause map[string]any
	if len(filter) > 0 {
		var filters []map[string]any
		for key, value := range filter {
			filters = append(filters, map[string]any{
				"term": map[string]any{fmt.Sprintf("metadata.%s.keyword", key): value},
			})
		}
		queryClause = map[string]any{
			"bool": map[string]any{
				"must":   []map[string]any{knn},
				"filter": filters,
			},
		}
	} else {
		queryClause = knn
	}

	body, err := json.Marshal(map[string]any{
		"size":  k,
		"query": queryClause,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling search body: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, provider.MapTransportError(s.Name(), "similarity search", err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, provider.MapTransportError(s.Name(), "similarity search", err)
	}

	if res.IsError() {
		return nil, provider.MapHTTPStatus(s.Name(), "similarity search", res.StatusCode,
			provider.KindIndexNotFound, fmt.Errorf("opensearch status %d: %s", res.StatusCode, respBody))
	}

	var parsed osSearchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, provider.NewError(provider.KindAPIGeneric, s.Name(), "similarity search",
			fmt.Errorf("unmarshalling search response: %w", err))
	}

	results := make([]SearchResult, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		md := hit.Source.Metadata
		doc := Document{
			ID:       md["id"],
			Content:  hit.Source.Content,
			Title:    md["title"],
			URL:      md["url"],
			Metadata: make(map[string]string),
		}
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		for k, v := range md {
			if k == "id" || k == "title" || k == "url" {
				continue
			}
			doc.Metadata[k] = v
		}
		results = append(results, SearchResult{Document: doc, Similarity: hit.Score})
	}

	return results, nil
}

func (s *OpenSearchStore) CountDocuments(ctx context.Context) (int, error) {
	req := opensearchapi.CountRequest{Index: []string{s.index}}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, provider.MapTransportError(s.Name(), "count documents", err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, provider.MapTransportError(s.Name(), "count documents", err)
	}

	if res.IsError() {
		return 0, provider.MapHTTPStatus(s.Name(), "count documents", res.StatusCode,
			provider.KindIndexNotFound, fmt.Errorf("opensearch status %d: %s", res.StatusCode, respBody))
	}

	var parsed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return 0, provider.NewError(provider.KindAPIGeneric, s.Name(), "count documents",
			fmt.Errorf("unmarshalling count response: %w", err))
	}

	return parsed.Count, nil
}

func (s *OpenSearchStore) CheckSetting(ctx context.Context) (*provider.SettingStatus, error) {
	count, err := s.CountDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.SimilaritySearch(ctx, "what is a vector store?", 1, nil); err != nil {
		return nil, err
	}
	return &provider.SettingStatus{
		Valid: true,
		Metadata: []provider.Metadata{
			{Code: provider.MetadataVectorStoreDocumentCount, Value: count},
		},
	}, nil
}
