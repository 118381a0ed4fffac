package embeddings

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

const maxBatchSize = 100

// OpenAIEmbedder generates embeddings using OpenAI's API. It also backs
// Azure OpenAI embedding deployments via the client's Azure configuration.
type OpenAIEmbedder struct {
	client       *openai.Client
	model        string
	tag          string
	notFoundKind provider.ErrorKind
}

// NewOpenAIEmbedder creates a new OpenAI embedder with the given API key and model.
func NewOpenAIEmbedder(apiKey, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client:       openai.NewClient(apiKey),
		model:        model,
		tag:          string(provider.EMOpenAI),
		notFoundKind: provider.KindModelNotFound,
	}
}

// NewAzureOpenAIEmbedder creates an embedder targeting an Azure OpenAI
// embedding deployment.
func NewAzureOpenAIEmbedder(apiKey, baseURL, deployment, apiVersion string) *OpenAIEmbedder {
	cfg := openai.DefaultAzureConfig(apiKey, baseURL)
	cfg.APIVersion = apiVersion
	cfg.AzureModelMapperFunc = func(model string) string { return deployment }

	return &OpenAIEmbedder{
		client:       openai.NewClientWithConfig(cfg),
		model:        deployment,
		tag:          string(provider.EMAzureOpenAI),
		notFoundKind: provider.KindDeploymentNotFound,
	}
}

func (e *OpenAIEmbedder) Name() string { return e.tag }

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	allEmbeddings := make([][]float32, 0, len(texts))

	// Batch up to maxBatchSize texts per API call.
	for i := 0; i < len(texts); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			return nil, provider.MapOpenAIError(e.tag, "create embeddings", e.notFoundKind, err)
		}

		if len(resp.Data) != len(batch) {
			return nil, provider.NewError(provider.KindAPIGeneric, e.tag, "create embeddings",
				fmt.Errorf("returned %d embeddings, expected %d", len(resp.Data), len(batch)))
		}

		for _, emb := range resp.Data {
			allEmbeddings = append(allEmbeddings, emb.Embedding)
		}
	}

	return allEmbeddings, nil
}

func (e *OpenAIEmbedder) CheckSetting(ctx context.Context) error {
	_, err := e.Embed(ctx, []string{"Hi, are you there?"})
	return err
}
