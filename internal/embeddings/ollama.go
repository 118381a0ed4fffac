package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// OllamaEmbedder generates embeddings using an Ollama instance.
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEmbedder creates a new Ollama embedder.
// model is the Ollama model name (e.g. "nomic-embed-text").
func NewOllamaEmbedder(baseURL, model string, client *http.Client) *OllamaEmbedder {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaEmbedder{
		baseURL: baseURL,
		model:   model,
		client:  client,
	}
}

func (e *OllamaEmbedder) Name() string {
	return string(provider.EMOllama) + "/" + e.model
}

type ollamaEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, 0, len(texts))
	for _, text := range texts {
		emb, err := e.embedSingle(ctx, text)
		if err != nil {
			return nil, err
		}
		results = append(results, emb)
	}
	return results, nil
}

func (e *OllamaEmbedder) embedSingle(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, provider.MapTransportError(string(provider.EMOllama), "create embeddings", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.MapTransportError(string(provider.EMOllama), "create embeddings", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, provider.MapHTTPStatus(string(provider.EMOllama), "create embeddings", resp.StatusCode,
			provider.KindModelNotFound, fmt.Errorf("ollama API status %d: %s", resp.StatusCode, respBody))
	}

	var embedResp ollamaEmbedResponse
	if err := json.Unmarshal(respBody, &embedResp); err != nil {
		return nil, provider.NewError(provider.KindAPIGeneric, string(provider.EMOllama), "create embeddings",
			fmt.Errorf("unmarshalling ollama response: %w", err))
	}
	if len(embedResp.Embeddings) == 0 {
		return nil, provider.NewError(provider.KindAPIGeneric, string(provider.EMOllama), "create embeddings",
			fmt.Errorf("ollama returned no embeddings"))
	}

	return embedResp.Embeddings[0], nil
}

func (e *OllamaEmbedder) CheckSetting(ctx context.Context) error {
	_, err := e.Embed(ctx, []string{"Hi, are you there?"})
	return err
}
