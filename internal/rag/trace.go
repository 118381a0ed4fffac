package rag

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder is the observability sink the chain reports into. Implementations
// must be safe for use from the single request goroutine; the chain never
// records concurrently.
type Recorder interface {
	RecordEvent(name string, payload map[string]any)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) RecordEvent(string, map[string]any) {}

// Event is one named occurrence in a trace, in chain order.
type Event struct {
	Name    string         `json:"name"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Trace accumulates the ordered event log for one request. When the caller
// sets the debug flag, the events become the response's debug payload.
type Trace struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	mu     sync.Mutex
	events []Event
}

// NewTrace starts a named trace with a fresh identifier.
func NewTrace(name string) *Trace {
	return &Trace{ID: uuid.NewString(), Name: name}
}

func (t *Trace) RecordEvent(name string, payload map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, Event{Name: name, At: time.Now().UTC(), Payload: payload})
}

// Events returns a copy of the recorded events in order.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// LogRecorder mirrors events to the process log, tagged with the trace
// name. It stands in for an external tracing backend.
type LogRecorder struct {
	TraceName string
	Next      Recorder
}

func (r *LogRecorder) RecordEvent(name string, payload map[string]any) {
	log.Printf("rag: trace %s: %s", r.TraceName, name)
	if r.Next != nil {
		r.Next.RecordEvent(name, payload)
	}
}
