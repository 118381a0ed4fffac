package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ziadkadry99/ragserver/internal/provider"
	"github.com/ziadkadry99/ragserver/internal/rag"
)

// errorInfo exposes the raised error cause for observability.
type errorInfo struct {
	Provider string `json:"provider,omitempty"`
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Request  string `json:"request,omitempty"`
}

// errorResponse is the structured error shape every failure is reduced to.
// Raw backend errors never reach the client.
type errorResponse struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Info    errorInfo `json:"info"`
}

// toErrorResponse maps any chain failure to the structured error shape and
// its HTTP status.
func toErrorResponse(err error) (int, errorResponse) {
	var pe *provider.Error
	if errors.As(err, &pe) {
		cause := ""
		if pe.Err != nil {
			cause = pe.Err.Error()
		}
		return statusForKind(pe.Kind), errorResponse{
			Code:    string(pe.Kind),
			Message: pe.Kind.Message(),
			Detail:  pe.Kind.Detail(),
			Info: errorInfo{
				Provider: pe.Provider,
				Error:    string(pe.Kind),
				Cause:    cause,
				Request:  pe.Request,
			},
		}
	}

	var invalid *rag.InvalidPromptTemplateError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, errorResponse{
			Code:    "invalid_prompt_template",
			Message: "The prompt template is malformed.",
			Detail:  "Check the template for unclosed or malformed placeholders.",
			Info:    errorInfo{Error: "invalid_prompt_template", Cause: invalid.Error()},
		}
	}

	var missing *rag.MissingPromptInputError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, errorResponse{
			Code:    "missing_prompt_input",
			Message: "The prompt template references a variable with no supplied input.",
			Detail:  "Add the missing key to question_answering_prompt_inputs.",
			Info:    errorInfo{Error: "missing_prompt_input", Cause: missing.Error()},
		}
	}

	var guard *rag.GuardCheckFailedError
	if errors.As(err, &guard) {
		return http.StatusInternalServerError, errorResponse{
			Code:    "guard_check_failed",
			Message: "The generated answer cites no source documents.",
			Detail:  "Check the retrieval configuration and the prompt template.",
			Info:    errorInfo{Error: "guard_check_failed", Cause: guard.Error()},
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Code:    string(provider.KindAPIGeneric),
		Message: provider.KindAPIGeneric.Message(),
		Info:    errorInfo{Error: string(provider.KindAPIGeneric), Cause: err.Error()},
	}
}

// statusForKind maps a taxonomy kind to an HTTP status.
func statusForKind(kind provider.ErrorKind) int {
	switch kind {
	case provider.KindUnknownProvider, provider.KindSettingMismatch,
		provider.KindBadRequest, provider.KindContextLengthExceeded:
		return http.StatusBadRequest
	case provider.KindAuthentication:
		return http.StatusUnauthorized
	case provider.KindResourceNotFound, provider.KindModelNotFound,
		provider.KindDeploymentNotFound, provider.KindIndexNotFound:
		return http.StatusNotFound
	case provider.KindConnection:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends a structured error response.
func writeError(w http.ResponseWriter, err error) {
	status, resp := toErrorResponse(err)
	log.Printf("server: request failed [%s]: %v", resp.Code, err)
	writeJSON(w, status, resp)
}

// writeBadRequest sends a plain 400 for request shape problems.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    string(provider.KindBadRequest),
		Message: message,
		Info:    errorInfo{Error: string(provider.KindBadRequest)},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
