package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// OpenAIProvider implements Provider using the OpenAI Chat Completions API.
// It also backs Azure OpenAI deployments through the client's Azure
// configuration; the two differ only in how a 404 is classified.
type OpenAIProvider struct {
	client       *openai.Client
	model        string
	temperature  float64
	tag          string
	notFoundKind provider.ErrorKind
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, model string, temperature float64) *OpenAIProvider {
	return &OpenAIProvider{
		client:       openai.NewClient(apiKey),
		model:        model,
		temperature:  temperature,
		tag:          string(provider.LLMOpenAI),
		notFoundKind: provider.KindModelNotFound,
	}
}

// NewAzureOpenAIProvider creates a provider targeting an Azure OpenAI
// deployment. Requests are routed to the deployment regardless of the
// model name in the request.
func NewAzureOpenAIProvider(apiKey, baseURL, deployment, apiVersion string, temperature float64) *OpenAIProvider {
	cfg := openai.DefaultAzureConfig(apiKey, baseURL)
	cfg.APIVersion = apiVersion
	cfg.AzureModelMapperFunc = func(model string) string { return deployment }

	return &OpenAIProvider{
		client:       openai.NewClientWithConfig(cfg),
		model:        deployment,
		temperature:  temperature,
		tag:          string(provider.LLMAzureOpenAI),
		notFoundKind: provider.KindDeploymentNotFound,
	}
}

func (p *OpenAIProvider) Name() string { return p.tag }

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}

	var messages []openai.ChatCompletionMessage
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(temperature),
	})
	if err != nil {
		return nil, provider.MapOpenAIError(p.tag, "chat completion", p.notFoundKind, err)
	}

	var content, finishReason string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &CompletionResponse{
		Content:      content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Model:        resp.Model,
		FinishReason: finishReason,
	}, nil
}

func (p *OpenAIProvider) CheckSetting(ctx context.Context) error {
	_, err := p.Complete(ctx, CompletionRequest{
		Messages:  []Message{{Role: RoleUser, Content: "Hi, are you there?"}},
		MaxTokens: 8,
	})
	return err
}
