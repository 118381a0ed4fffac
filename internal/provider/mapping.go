package provider

import (
	"context"
	"errors"
	"fmt"
	"net"

	openai "github.com/sashabaranov/go-openai"
)

// statusKinds maps a backend HTTP status to a taxonomy kind. 404 is absent
// on purpose: what a not-found means depends on the call site (model,
// deployment or index), so callers pass the kind explicitly.
var statusKinds = map[int]ErrorKind{
	400: KindBadRequest,
	401: KindAuthentication,
	403: KindAuthentication,
	408: KindConnection,
	413: KindContextLengthExceeded,
	422: KindBadRequest,
	429: KindAPIGeneric,
	500: KindAPIGeneric,
	502: KindConnection,
	503: KindConnection,
	504: KindConnection,
}

// codeKinds maps backend error codes to kinds, overriding the status-based
// mapping when present.
var codeKinds = map[string]ErrorKind{
	"context_length_exceeded":   KindContextLengthExceeded,
	"invalid_api_key":           KindAuthentication,
	"model_not_found":           KindModelNotFound,
	"DeploymentNotFound":        KindDeploymentNotFound,
	"index_not_found_exception": KindIndexNotFound,
}

// KindForStatus resolves an HTTP status into a taxonomy kind, using
// notFound for 404 responses.
func KindForStatus(status int, notFound ErrorKind) ErrorKind {
	if status == 404 {
		return notFound
	}
	if k, ok := statusKinds[status]; ok {
		return k
	}
	return KindAPIGeneric
}

// KindForCode resolves a backend error code into a taxonomy kind, or ""
// when the code has no override.
func KindForCode(code string) ErrorKind {
	return codeKinds[code]
}

// MapOpenAIError translates an error from the go-openai client into the
// taxonomy. notFound chooses the kind used for 404 responses, which differ
// between plain OpenAI (model) and Azure deployments.
func MapOpenAIError(providerTag, request string, notFound ErrorKind, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := KindForStatus(apiErr.HTTPStatusCode, notFound)
		if apiErr.Code != nil {
			if k := KindForCode(fmt.Sprintf("%v", apiErr.Code)); k != "" {
				kind = k
			}
		}
		return NewError(kind, providerTag, request, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewError(KindForStatus(reqErr.HTTPStatusCode, notFound), providerTag, request, err)
	}

	return MapTransportError(providerTag, request, err)
}

// MapTransportError translates network-level failures (timeouts, DNS, TLS,
// refused connections, cancelled contexts) into connection errors; anything
// unrecognised becomes a generic API error.
func MapTransportError(providerTag, request string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return NewError(KindConnection, providerTag, request, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewError(KindConnection, providerTag, request, err)
	}
	return NewError(KindAPIGeneric, providerTag, request, err)
}

// MapHTTPStatus translates a raw HTTP response status from a hand-rolled
// backend client (Ollama, TGI, OpenSearch) into the taxonomy.
func MapHTTPStatus(providerTag, request string, status int, notFound ErrorKind, cause error) error {
	return NewError(KindForStatus(status, notFound), providerTag, request, cause)
}
