package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/ragserver/internal/provider"
	"github.com/ziadkadry99/ragserver/internal/rag"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Post("/rag", s.handleRag)

	r.Route("/llm-providers", func(r chi.Router) {
		r.Get("/", s.handleListLLMProviders)
		r.Post("/setting/status", s.handleCheckLLMSetting)
	})
	r.Route("/em-providers", func(r chi.Router) {
		r.Get("/", s.handleListEMProviders)
		r.Post("/setting/status", s.handleCheckEMSetting)
	})
	r.Route("/vector-store-providers", func(r chi.Router) {
		r.Get("/", s.handleListVectorStoreProviders)
		r.Post("/setting/status", s.handleCheckVectorStoreSetting)
	})
}

func (s *Server) handleRag(w http.ResponseWriter, r *http.Request) {
	var query rag.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if err := query.Validate(); err != nil {
		// Taxonomy errors carry their own status; anything else from
		// validation is a request shape problem.
		var pe *provider.Error
		if errors.As(err, &pe) {
			writeError(w, err)
		} else {
			writeBadRequest(w, err.Error())
		}
		return
	}

	debug, _ := strconv.ParseBool(r.URL.Query().Get("debug"))

	resp, err := s.chain.Execute(r.Context(), query, debug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLLMProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": provider.LLMProviders()})
}

func (s *Server) handleListEMProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": provider.EMProviders()})
}

func (s *Server) handleListVectorStoreProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"providers": provider.VectorStoreProviders()})
}

// settingStatusResponse reports the outcome of a live setting probe.
type settingStatusResponse struct {
	Valid    bool                `json:"valid"`
	Metadata []provider.Metadata `json:"metadata,omitempty"`
	Errors   []errorResponse     `json:"errors,omitempty"`
}

func invalidStatus(err error) settingStatusResponse {
	_, resp := toErrorResponse(err)
	return settingStatusResponse{Valid: false, Errors: []errorResponse{resp}}
}

func (s *Server) handleCheckLLMSetting(w http.ResponseWriter, r *http.Request) {
	var setting provider.LLMSetting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	handle, err := s.llms.Resolve(setting)
	if err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}
	if err := handle.CheckSetting(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, settingStatusResponse{Valid: true})
}

func (s *Server) handleCheckEMSetting(w http.ResponseWriter, r *http.Request) {
	var setting provider.EMSetting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	handle, err := s.ems.Resolve(setting)
	if err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}
	if err := handle.CheckSetting(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, settingStatusResponse{Valid: true})
}

// checkVectorStoreRequest carries everything a vector store probe needs:
// the store setting, the embedder used for the probe query, and the index.
type checkVectorStoreRequest struct {
	VectorStoreSetting provider.VectorStoreSetting `json:"vector_store_setting"`
	EMSetting          provider.EMSetting          `json:"em_setting"`
	DocumentIndexName  string                      `json:"document_index_name"`
}

func (s *Server) handleCheckVectorStoreSetting(w http.ResponseWriter, r *http.Request) {
	var req checkVectorStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.DocumentIndexName == "" {
		writeBadRequest(w, "document_index_name is required")
		return
	}

	embedder, err := s.ems.Resolve(req.EMSetting)
	if err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}
	store, err := s.stores.Resolve(req.VectorStoreSetting, req.DocumentIndexName, embedder)
	if err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}

	status, err := store.CheckSetting(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, invalidStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, settingStatusResponse{
		Valid:    status.Valid,
		Metadata: status.Metadata,
	})
}
