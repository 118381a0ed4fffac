package rag

import (
	"fmt"

	"github.com/ziadkadry99/ragserver/internal/provider"
)

// Reserved prompt input names. Context and chat history are filled in by
// the chain; no_answer carries the caller's decline-to-answer sentinel.
const (
	InputQuestion    = "question"
	InputContext     = "context"
	InputChatHistory = "chat_history"
	InputNoAnswer    = "no_answer"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleHuman MessageRole = "HUMAN"
	RoleAI    MessageRole = "AI"
)

// ChatMessage is one turn of the conversation. The history slice is
// constructed once per request and never mutated afterwards.
type ChatMessage struct {
	Role MessageRole `json:"role"`
	Text string      `json:"text"`
}

// SearchParams parameterizes the similarity search. The provider tag must
// match the bound vector store setting's tag.
type SearchParams struct {
	K        int                          `json:"k"`
	Filter   map[string]string            `json:"filter,omitempty"`
	Provider provider.VectorStoreProvider `json:"provider"`
}

// Validate checks the search invariants.
func (p SearchParams) Validate() error {
	if p.K < 1 {
		return fmt.Errorf("search params: k must be >= 1, got %d", p.K)
	}
	return nil
}

// RetrievedDocument is one chunk returned by the retriever, fresh per
// request. Metadata always carries the chunk's stable identifier and a
// display title; the source URL may be empty.
type RetrievedDocument struct {
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata is the metadata contract every retrieved chunk satisfies.
type DocumentMetadata struct {
	ID    string
	Title string
	URL   string
	Extra map[string]string
}

// PromptInputs maps placeholder names to their values.
type PromptInputs map[string]string

// ChainResult is the raw chain output before response assembly.
type ChainResult struct {
	Answer            string
	SourceDocuments   []RetrievedDocument
	CondensedQuestion string
}

// Query is the inbound request contract for one RAG execution.
type Query struct {
	QuestionAnsweringLLMSetting   provider.LLMSetting            `json:"question_answering_llm_setting"`
	CondenseQuestionLLMSetting    *provider.LLMSetting           `json:"condense_question_llm_setting,omitempty"`
	EmbeddingQuestionEMSetting    provider.EMSetting             `json:"embedding_question_em_setting"`
	VectorStoreSetting            provider.VectorStoreSetting    `json:"vector_store_setting"`
	DocumentIndexName             string                         `json:"document_index_name"`
	DocumentSearchParams          SearchParams                   `json:"document_search_params"`
	QuestionAnsweringPromptInputs PromptInputs                   `json:"question_answering_prompt_inputs"`
	History                       []ChatMessage                  `json:"history,omitempty"`
	ObservabilitySetting          *provider.ObservabilitySetting `json:"observability_setting,omitempty"`
}

// Validate checks the request-level invariants before any provider is
// resolved.
func (q Query) Validate() error {
	if q.DocumentIndexName == "" {
		return fmt.Errorf("document_index_name is required")
	}
	if err := q.DocumentSearchParams.Validate(); err != nil {
		return err
	}
	if q.DocumentSearchParams.Provider != "" &&
		q.DocumentSearchParams.Provider != q.VectorStoreSetting.Provider {
		return provider.NewError(provider.KindSettingMismatch,
			string(q.DocumentSearchParams.Provider),
			fmt.Sprintf("search params target %q but the vector store setting is %q",
				q.DocumentSearchParams.Provider, q.VectorStoreSetting.Provider), nil)
	}
	if q.QuestionAnsweringPromptInputs[InputQuestion] == "" {
		return fmt.Errorf("prompt input %q is required", InputQuestion)
	}
	if _, ok := q.QuestionAnsweringPromptInputs[InputNoAnswer]; !ok {
		return fmt.Errorf("prompt input %q is required", InputNoAnswer)
	}
	if q.ObservabilitySetting != nil {
		if err := q.ObservabilitySetting.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Footnote is one de-duplicated source citation.
type Footnote struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
}

// TextWithFootnotes is the externally visible answer shape.
type TextWithFootnotes struct {
	Text      string     `json:"text"`
	Footnotes []Footnote `json:"footnotes"`
}

// Response is the outbound contract of the chain.
type Response struct {
	Answer TextWithFootnotes `json:"answer"`
	Debug  any               `json:"debug"`
}
