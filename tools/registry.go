package tools

import (
	"encoding/json"
	"fmt"

	"memchat/internal/memstore"
)

// Registry holds the two memory tool definitions wired to one store.
//
// Contract: Dispatch always returns a plain string, whatever happens
// inside a tool. The conversation loop hands that string back to the
// model as ordinary tool-result content, so a failing tool can never
// abort a run.
type Registry struct {
	defs []ToolDefinition
}

// NewRegistry builds the static two-tool registry over store.
func NewRegistry(store *memstore.Store) *Registry {
	return &Registry{defs: []ToolDefinition{
		NewListMemoryFiles(store),
		NewReadMemoryFile(store),
	}}
}

// Definitions returns the registered tools in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	return r.defs
}

// Dispatch executes the named tool with the given arguments and renders
// the outcome, success or failure, as a string.
func (r *Registry) Dispatch(name string, args map[string]any) string {
	var def *ToolDefinition
	for i := range r.defs {
		if r.defs[i].Name == name {
			def = &r.defs[i]
			break
		}
	}
	if def == nil {
		return fmt.Sprintf("Error: Unknown tool '%s'", name)
	}

	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %v", name, err)
	}

	out, err := def.Function(raw)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}
