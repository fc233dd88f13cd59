// Package events publishes transaction outcomes to external consumers.
// Publishing is best-effort: a failed publish is reported to the caller
// but must never stop transaction ingestion.
package events

import (
	"context"
	"sync"
)

// Publisher delivers outcome events to some downstream system.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Discard drops all events. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, any) error { return nil }

// Recorder keeps published events in memory. It is safe for concurrent
// use and serves tests and local runs that want to inspect outcomes.
type Recorder struct {
	mu     sync.Mutex
	events []any
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish appends the event.
func (r *Recorder) Publish(_ context.Context, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]any, len(r.events))
	copy(copied, r.events)
	return copied
}

var (
	_ Publisher = Discard{}
	_ Publisher = (*Recorder)(nil)
)
