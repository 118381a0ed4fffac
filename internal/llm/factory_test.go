package llm

import (
	"testing"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

func TestFactoryResolve(t *testing.T) {
	factory := NewFactory(nil, nil)

	tests := []struct {
		name     string
		setting  provider.LLMSetting
		wantName string
	}{
		{
			name: "openai",
			setting: provider.LLMSetting{
				Provider: provider.LLMOpenAI,
				APIKey:   provider.SecretRef{Value: "sk-test"},
				Model:    "gpt-4o",
				Prompt:   "Answer {question}.",
			},
			wantName: "openai",
		},
		{
			name: "azure openai",
			setting: provider.LLMSetting{
				Provider:       provider.LLMAzureOpenAI,
				APIKey:         provider.SecretRef{Value: "key"},
				DeploymentName: "gpt4-prod",
				APIVersion:     "2024-03-01-preview",
				BaseURL:        "https://example.openai.azure.com",
				Prompt:         "Answer {question}.",
			},
			wantName: "azure_openai",
		},
		{
			name: "ollama",
			setting: provider.LLMSetting{
				Provider: provider.LLMOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3",
				Prompt:   "Answer {question}.",
			},
			wantName: "ollama",
		},
		{
			name: "huggingface tgi",
			setting: provider.LLMSetting{
				Provider: provider.LLMHuggingFaceTGI,
				BaseURL:  "http://tgi:8080",
				Prompt:   "Answer {question}.",
			},
			wantName: "huggingface_tgi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, err := factory.Resolve(tt.setting)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if handle.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", handle.Name(), tt.wantName)
			}
		})
	}
}

func TestFactoryRejectsInvalidSetting(t *testing.T) {
	factory := NewFactory(nil, nil)

	// Missing model fails validation before any dispatch.
	_, err := factory.Resolve(provider.LLMSetting{
		Provider: provider.LLMOpenAI,
		APIKey:   provider.SecretRef{Value: "sk-test"},
		Prompt:   "Answer {question}.",
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	factory := NewFactory(nil, nil)

	_, err := factory.Resolve(provider.LLMSetting{Provider: "gemini", Prompt: "x"})
	if !provider.IsKind(err, provider.KindUnknownProvider) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestFactoryResolvesSecretFromEnv(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")
	factory := NewFactory(nil, nil)

	handle, err := factory.Resolve(provider.LLMSetting{
		Provider: provider.LLMOpenAI,
		APIKey:   provider.SecretRef{Env: "TEST_OPENAI_KEY"},
		Model:    "gpt-4o",
		Prompt:   "Answer {question}.",
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if handle == nil {
		t.Fatal("expected a handle")
	}
}

func TestFactoryUnresolvableSecret(t *testing.T) {
	factory := NewFactory(nil, nil)

	_, err := factory.Resolve(provider.LLMSetting{
		Provider: provider.LLMOpenAI,
		APIKey:   provider.SecretRef{Env: "TEST_OPENAI_KEY_UNSET"},
		Model:    "gpt-4o",
		Prompt:   "Answer {question}.",
	})
	if err == nil {
		t.Fatal("expected an error for an unset secret variable")
	}
}
