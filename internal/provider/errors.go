package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provider failure into a fixed taxonomy. Every
// backend-specific error is mapped to exactly one kind before it crosses the
// chain boundary; raw backend errors never leak to callers.
type ErrorKind string

const (
	KindUnknownProvider       ErrorKind = "unknown_provider"
	KindSettingMismatch       ErrorKind = "setting_mismatch"
	KindConnection            ErrorKind = "connection"
	KindAuthentication        ErrorKind = "authentication"
	KindResourceNotFound      ErrorKind = "resource_not_found"
	KindModelNotFound         ErrorKind = "model_not_found"
	KindDeploymentNotFound    ErrorKind = "deployment_not_found"
	KindIndexNotFound         ErrorKind = "index_not_found"
	KindBadRequest            ErrorKind = "bad_request"
	KindContextLengthExceeded ErrorKind = "context_length_exceeded"
	KindAPIGeneric            ErrorKind = "api_generic"
)

// Error is a provider failure mapped into the taxonomy. It carries the
// provider tag and a short description of the originating request so the
// HTTP layer can build a structured error response.
type Error struct {
	Kind     ErrorKind
	Provider string
	Request  string // short description of what was being attempted
	Err      error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s] %s: %v", e.Provider, e.Kind, e.Request, e.Err)
	}
	return fmt.Sprintf("%s [%s] %s", e.Provider, e.Kind, e.Request)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a taxonomy error for the given provider and request.
func NewError(kind ErrorKind, providerTag, request string, cause error) *Error {
	return &Error{Kind: kind, Provider: providerTag, Request: request, Err: cause}
}

// KindOf returns the taxonomy kind of err, or KindAPIGeneric if err is not a
// provider error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindAPIGeneric
}

// IsKind reports whether err is a provider error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// Message returns a human-readable message for an error kind, suitable for
// the structured error response.
func (k ErrorKind) Message() string {
	switch k {
	case KindUnknownProvider:
		return "Unknown AI provider."
	case KindSettingMismatch:
		return "The setting does not match the requested provider kind."
	case KindConnection:
		return "Connection error to the AI provider API."
	case KindAuthentication:
		return "Authentication error to the AI provider API."
	case KindResourceNotFound:
		return "An AI provider resource was not found."
	case KindModelNotFound:
		return "Unknown AI provider model."
	case KindDeploymentNotFound:
		return "Unknown AI provider deployment."
	case KindIndexNotFound:
		return "The vector store index was not found."
	case KindBadRequest:
		return "Bad request to the AI provider API."
	case KindContextLengthExceeded:
		return "The model's context length has been exceeded."
	default:
		return "The AI provider API returned an error."
	}
}

// Detail returns a help/solution hint for an error kind, mirroring Message.
func (k ErrorKind) Detail() string {
	switch k {
	case KindUnknownProvider:
		return "Check the provider tag and make sure it is registered."
	case KindSettingMismatch:
		return "Check that an LLM, EM or vector store setting is sent to the matching registry."
	case KindConnection:
		return "Check the requested URL, your network settings, proxy configuration, SSL certificates and firewall rules."
	case KindAuthentication:
		return "Check your API key or token and make sure it is correct and active."
	case KindResourceNotFound, KindModelNotFound, KindDeploymentNotFound:
		return "Check the requested model or deployment name and make sure it exists."
	case KindIndexNotFound:
		return "Check the index name and make sure the documents have been indexed."
	case KindBadRequest, KindContextLengthExceeded:
		return "Check the request body sent to the AI provider API."
	default:
		return "Check the AI provider API response for details."
	}
}
