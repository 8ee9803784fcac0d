// Package orchestrator runs the baseline and memory-augmented calls for
// one prompt and collects the tool-call event log of the augmented run.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"memchat/internal/memstore"
	"memchat/internal/provider"
	"memchat/tools"
)

// Orchestrator is the public entry point of the core. The baseline call
// never sees the tools or schemas and cannot contribute events; the
// augmented call is exactly one conversation-loop run.
type Orchestrator struct {
	backend   provider.Backend
	registry  *tools.Registry
	model     string
	maxRounds int
	sink      EventSink
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxRounds overrides the augmented run's round budget.
func WithMaxRounds(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxRounds = n
		}
	}
}

// WithEventSink attaches a side-channel sink for run and tool-call records.
func WithEventSink(sink EventSink) Option {
	return func(o *Orchestrator) { o.sink = sink }
}

// New builds an orchestrator over one backend, model, and memory store.
// The store is threaded through explicitly so concurrent runs against
// different memory roots stay independent.
func New(backend provider.Backend, store *memstore.Store, model string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:   backend,
		registry:  tools.NewRegistry(store),
		model:     model,
		maxRounds: DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Result carries both answers and the augmented run's event log.
type Result struct {
	Prompt    string
	Model     string
	Baseline  string
	Augmented string
	Events    []ToolCallEvent
}

// Run executes the baseline and augmented calls for prompt. The two calls
// are independent, so they run concurrently; a failure in either becomes
// an error-description string in that call's output field and leaves the
// other result intact. Run itself never returns an error.
func (o *Orchestrator) Run(ctx context.Context, prompt string) Result {
	res := Result{Prompt: prompt, Model: o.model, Events: []ToolCallEvent{}}

	if o.sink != nil {
		o.sink.Emit("run_start", map[string]any{"model": o.model, "prompt": prompt})
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		resp, err := o.backend.Complete(ctx, provider.Request{
			Model:    o.model,
			Messages: []provider.Message{{Role: provider.RoleUser, Content: prompt}},
		})
		if err != nil {
			res.Baseline = fmt.Sprintf("Error in baseline chat: %v", err)
			return
		}
		res.Baseline = resp.Content
	}()

	go func() {
		defer wg.Done()
		l := &loop{
			backend:   o.backend,
			registry:  o.registry,
			model:     o.model,
			maxRounds: o.maxRounds,
			sink:      o.sink,
		}
		out, events, err := l.run(ctx, prompt)
		res.Events = events
		if err != nil {
			res.Augmented = fmt.Sprintf("Error in augmented chat: %v", err)
			return
		}
		res.Augmented = out
	}()

	wg.Wait()

	if o.sink != nil {
		o.sink.Emit("run_end", map[string]any{"model": o.model, "tool_calls": len(res.Events)})
	}
	return res
}

// exportShape is the JSON contract consumed by the front-ends.
type exportShape struct {
	Prompt     string          `json:"prompt"`
	Model      string          `json:"model"`
	Baseline   string          `json:"baseline"`
	Augmented  string          `json:"augmented"`
	ToolEvents []ToolCallEvent `json:"tool_events"`
}

// ExportJSON serializes the result as
// {prompt, model, baseline, augmented, tool_events}; tool_events is
// always an array, never null.
func (r Result) ExportJSON() ([]byte, error) {
	events := r.Events
	if events == nil {
		events = []ToolCallEvent{}
	}
	return json.MarshalIndent(exportShape{
		Prompt:     r.Prompt,
		Model:      r.Model,
		Baseline:   r.Baseline,
		Augmented:  r.Augmented,
		ToolEvents: events,
	}, "", "  ")
}
