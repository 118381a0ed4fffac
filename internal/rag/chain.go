package rag

import (
	"context"
	"strings"
	"time"

	"github.com/ziadkadry99/ragserver/internal/embeddings"
	"github.com/ziadkadry99/ragserver/internal/llm"
	"github.com/ziadkadry99/ragserver/internal/provider"
	"github.com/ziadkadry99/ragserver/internal/vectordb"
)

// LLMResolver resolves an LLM setting into a backend handle.
type LLMResolver interface {
	Resolve(setting provider.LLMSetting) (llm.Provider, error)
}

// EMResolver resolves an embedding setting into a backend handle.
type EMResolver interface {
	Resolve(setting provider.EMSetting) (embeddings.Embedder, error)
}

// StoreResolver resolves a vector store setting into a store bound to one
// index, embedding queries with the given embedder.
type StoreResolver interface {
	Resolve(setting provider.VectorStoreSetting, index string, embedder embeddings.Embedder) (vectordb.Store, error)
}

// condensePromptTemplate folds the chat history into a standalone question
// used as the retrieval query.
const condensePromptTemplate = `Given the following conversation and a follow up question, rephrase the follow up question to be a standalone question, in its original language.

Chat history:
{chat_history}

Follow up question: {question}

Standalone question:`

// Chain is the conversational QA orchestrator. It resolves provider
// handles per request, retrieves context, renders the prompt, invokes the
// LLM, applies the guard and assembles the response. Retrieval always
// completes before the LLM invocation begins; at most one provider call is
// in flight at any instant, so caller cancellation propagates to that call.
type Chain struct {
	llms     LLMResolver
	ems      EMResolver
	stores   StoreResolver
	timeout  time.Duration
	condense bool
}

// Option configures a Chain.
type Option func(*Chain)

// WithProviderTimeout bounds each provider call with the given timeout.
// This is a process-wide setting, not renegotiated per request.
func WithProviderTimeout(d time.Duration) Option {
	return func(c *Chain) { c.timeout = d }
}

// WithCondenseQuestion toggles history-aware question rephrasing. When
// disabled, retrieval is keyed on the raw question; the chat history still
// reaches the final answer-generation call either way.
func WithCondenseQuestion(enabled bool) Option {
	return func(c *Chain) { c.condense = enabled }
}

// NewChain creates a chain over the three provider factories.
func NewChain(llms LLMResolver, ems EMResolver, stores StoreResolver, opts ...Option) *Chain {
	c := &Chain{llms: llms, ems: ems, stores: stores, condense: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs one RAG request end to end. Provider failures abort the
// chain with a taxonomy error; nothing is retried. When debug is set, the
// response carries the ordered trace event log.
func (c *Chain) Execute(ctx context.Context, q Query, debug bool) (*Response, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	embedder, err := c.ems.Resolve(q.EmbeddingQuestionEMSetting)
	if err != nil {
		return nil, err
	}
	store, err := c.stores.Resolve(q.VectorStoreSetting, q.DocumentIndexName, embedder)
	if err != nil {
		return nil, err
	}
	qaLLM, err := c.llms.Resolve(q.QuestionAnsweringLLMSetting)
	if err != nil {
		return nil, err
	}

	trace := NewTrace("rag")
	var recorder Recorder = trace
	if q.ObservabilitySetting != nil {
		recorder = &LogRecorder{TraceName: trace.ID, Next: trace}
	}

	inputs := q.QuestionAnsweringPromptInputs
	question := inputs[InputQuestion]
	recorder.RecordEvent("chain_start", map[string]any{"question": question})

	retrievalQuery := question
	var condensed string
	if len(q.History) > 0 && c.condense {
		condensed, err = c.condenseQuestion(ctx, q, question)
		if err != nil {
			return nil, err
		}
		retrievalQuery = condensed
		recorder.RecordEvent("condense_question", map[string]any{"standalone_question": condensed})
	}

	callCtx, cancel := c.boundCall(ctx)
	docs, err := Retrieve(callCtx, store, retrievalQuery, q.DocumentSearchParams)
	cancel()
	if err != nil {
		return nil, err
	}
	recorder.RecordEvent("retrieval", map[string]any{"documents": len(docs)})

	rendered, err := c.renderPrompt(q, docs)
	if err != nil {
		return nil, err
	}

	messages := append(historyMessages(q.History), llm.Message{
		Role:    llm.RoleUser,
		Content: rendered,
	})

	callCtx, cancel = c.boundCall(ctx)
	completion, err := qaLLM.Complete(callCtx, llm.CompletionRequest{
		Messages:    messages,
		Temperature: q.QuestionAnsweringLLMSetting.Temperature,
	})
	cancel()
	if err != nil {
		return nil, err
	}
	recorder.RecordEvent("llm_invocation", map[string]any{
		"model":         completion.Model,
		"input_tokens":  completion.InputTokens,
		"output_tokens": completion.OutputTokens,
	})

	result := ChainResult{
		Answer:            strings.TrimSpace(completion.Content),
		SourceDocuments:   docs,
		CondensedQuestion: condensed,
	}

	declined := result.Answer == inputs[InputNoAnswer]
	guarded, err := ApplyGuard(inputs, result)
	if err != nil {
		return nil, err
	}
	if declined && len(docs) > 0 {
		recorder.RecordEvent("guard_correction", map[string]any{"removed_documents": len(docs)})
	}

	var debugPayload any
	if debug {
		debugPayload = map[string]any{
			"trace_id": trace.ID,
			"events":   trace.Events(),
		}
	}

	resp := AssembleResponse(guarded, debugPayload)
	recorder.RecordEvent("chain_end", map[string]any{"footnotes": len(resp.Answer.Footnotes)})
	return resp, nil
}

// condenseQuestion makes the secondary LLM call that folds the chat
// history into a standalone retrieval question.
func (c *Chain) condenseQuestion(ctx context.Context, q Query, question string) (string, error) {
	setting := q.QuestionAnsweringLLMSetting
	if q.CondenseQuestionLLMSetting != nil {
		setting = *q.CondenseQuestionLLMSetting
	}
	// The condense step uses its own internal template, not the setting's
	// QA prompt.
	setting.Prompt = condensePromptTemplate

	condenseLLM, err := c.llms.Resolve(setting)
	if err != nil {
		return "", err
	}

	rendered, err := Render(condensePromptTemplate, PromptInputs{
		InputChatHistory: historyTranscript(q.History),
		InputQuestion:    question,
	})
	if err != nil {
		return "", err
	}

	callCtx, cancel := c.boundCall(ctx)
	defer cancel()
	completion, err := condenseLLM.Complete(callCtx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: rendered}},
		Temperature: setting.Temperature,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(completion.Content), nil
}

// renderPrompt merges the caller inputs with the reserved context and
// chat_history values and renders the QA template. Retrieval output is
// joined even when the template omits {context}; the contract is that
// retrieval always runs, referenced or not.
func (c *Chain) renderPrompt(q Query, docs []RetrievedDocument) (string, error) {
	merged := make(PromptInputs, len(q.QuestionAnsweringPromptInputs)+2)
	for k, v := range q.QuestionAnsweringPromptInputs {
		merged[k] = v
	}
	merged[InputContext] = joinDocuments(docs)
	merged[InputChatHistory] = historyTranscript(q.History)

	return Render(q.QuestionAnsweringLLMSetting.Prompt, merged)
}

func (c *Chain) boundCall(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// joinDocuments concatenates retrieved contents into the {context} value.
func joinDocuments(docs []RetrievedDocument) string {
	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}
	return strings.Join(contents, "\n\n")
}

// historyTranscript renders the conversation for prompt consumption.
func historyTranscript(history []ChatMessage) string {
	lines := make([]string, len(history))
	for i, msg := range history {
		speaker := "Human"
		if msg.Role == RoleAI {
			speaker = "AI"
		}
		lines[i] = speaker + ": " + msg.Text
	}
	return strings.Join(lines, "\n")
}

// historyMessages converts chat history into provider chat messages.
func historyMessages(history []ChatMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == RoleAI {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Text})
	}
	return messages
}
