package provider

import (
	"context"
	"errors"
	"net"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{400, KindBadRequest},
		{401, KindAuthentication},
		{403, KindAuthentication},
		{413, KindContextLengthExceeded},
		{429, KindAPIGeneric},
		{502, KindConnection},
		{503, KindConnection},
		{500, KindAPIGeneric},
		{418, KindAPIGeneric},
	}
	for _, tt := range tests {
		if got := KindForStatus(tt.status, KindModelNotFound); got != tt.want {
			t.Errorf("KindForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}

	// 404 carries the call-site specific kind.
	if got := KindForStatus(404, KindDeploymentNotFound); got != KindDeploymentNotFound {
		t.Errorf("KindForStatus(404) = %v", got)
	}
	if got := KindForStatus(404, KindIndexNotFound); got != KindIndexNotFound {
		t.Errorf("KindForStatus(404) = %v", got)
	}
}

func TestKindForCodeOverridesStatus(t *testing.T) {
	apiErr := &openai.APIError{
		HTTPStatusCode: 400,
		Code:           "context_length_exceeded",
		Message:        "too long",
	}

	err := MapOpenAIError("openai", "chat completion", KindModelNotFound, apiErr)
	if !IsKind(err, KindContextLengthExceeded) {
		t.Fatalf("expected context length exceeded, got %v", err)
	}
}

func TestMapOpenAIErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   ErrorKind
	}{
		{"authentication", 401, KindAuthentication},
		{"model not found", 404, KindModelNotFound},
		{"bad request", 400, KindBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapOpenAIError("openai", "chat completion", KindModelNotFound,
				&openai.APIError{HTTPStatusCode: tt.status})
			if !IsKind(err, tt.want) {
				t.Errorf("got %v, want kind %v", err, tt.want)
			}
		})
	}
}

func TestMapOpenAIErrorWrapsCause(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: 401}
	err := MapOpenAIError("openai", "chat completion", KindModelNotFound, apiErr)

	var unwrapped *openai.APIError
	if !errors.As(err, &unwrapped) {
		t.Error("the original API error should remain reachable via Unwrap")
	}
}

func TestMapTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline", context.DeadlineExceeded, KindConnection},
		{"cancelled", context.Canceled, KindConnection},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.example.com"}, KindConnection},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, KindConnection},
		{"unknown", errors.New("boom"), KindAPIGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapTransportError("ollama", "chat", tt.err)
			if !IsKind(err, tt.want) {
				t.Errorf("got %v, want kind %v", err, tt.want)
			}
		})
	}
}

func TestErrorMessageAndDetailCoverAllKinds(t *testing.T) {
	kinds := []ErrorKind{
		KindUnknownProvider, KindSettingMismatch, KindConnection,
		KindAuthentication, KindResourceNotFound, KindModelNotFound,
		KindDeploymentNotFound, KindIndexNotFound, KindBadRequest,
		KindContextLengthExceeded, KindAPIGeneric,
	}
	for _, k := range kinds {
		if k.Message() == "" {
			t.Errorf("kind %s has no message", k)
		}
		if k.Detail() == "" {
			t.Errorf("kind %s has no detail", k)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := NewError(KindAuthentication, "openai", "chat", nil)
	if KindOf(err) != KindAuthentication {
		t.Errorf("KindOf = %v", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindAPIGeneric {
		t.Errorf("non-taxonomy errors default to api_generic")
	}
}
