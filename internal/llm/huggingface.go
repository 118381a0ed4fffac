package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// HuggingFaceTGIProvider implements Provider against a self-hosted
// text-generation-inference server. TGI's generate endpoint takes a single
// flattened prompt, so chat messages are joined with role prefixes.
type HuggingFaceTGIProvider struct {
	baseURL     string
	temperature float64
	client      *http.Client
}

// NewHuggingFaceTGIProvider creates a provider for a TGI server at baseURL.
func NewHuggingFaceTGIProvider(baseURL string, temperature float64, client *http.Client) *HuggingFaceTGIProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HuggingFaceTGIProvider{
		baseURL:     baseURL,
		temperature: temperature,
		client:      client,
	}
}

func (p *HuggingFaceTGIProvider) Name() string { return string(provider.LLMHuggingFaceTGI) }

type tgiGenerateRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters tgiParameters `json:"parameters"`
}

type tgiParameters struct {
	Temperature  float64 `json:"temperature,omitempty"`
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
}

type tgiGenerateResponse struct {
	GeneratedText string `json:"generated_text"`
}

func (p *HuggingFaceTGIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}

	var sb strings.Builder
	for _, msg := range req.Messages {
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	body, err := json.Marshal(tgiGenerateRequest{
		Inputs: sb.String(),
		Parameters: tgiParameters{
			Temperature:  temperature,
			MaxNewTokens: req.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling tgi request: %w", err)
	}

	url := fmt.Sprintf("%s/generate", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating tgi request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, provider.MapTransportError(p.Name(), "text generation", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, provider.MapTransportError(p.Name(), "text generation", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, provider.MapHTTPStatus(p.Name(), "text generation", httpResp.StatusCode,
			provider.KindModelNotFound, fmt.Errorf("tgi API status %d: %s", httpResp.StatusCode, respBody))
	}

	var genResp tgiGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, provider.NewError(provider.KindAPIGeneric, p.Name(), "text generation",
			fmt.Errorf("unmarshalling tgi response: %w", err))
	}

	return &CompletionResponse{
		Content:      genResp.GeneratedText,
		FinishReason: "stop",
	}, nil
}

func (p *HuggingFaceTGIProvider) CheckSetting(ctx context.Context) error {
	_, err := p.Complete(ctx, CompletionRequest{
		Messages:  []Message{{Role: RoleUser, Content: "Hi, are you there?"}},
		MaxTokens: 8,
	})
	return err
}
