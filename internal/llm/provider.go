package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// CheckSetting performs a lightweight live probe (a trivial completion)
	// to validate the bound setting. Failures are reported as provider
	// taxonomy errors.
	CheckSetting(ctx context.Context) error
	// Name returns the name of this provider.
	Name() string
}
