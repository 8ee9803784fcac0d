// Package provider abstracts the language-model backends behind a single
// request/response interface.
//
// The conversation loop works only with the provider-neutral types in this
// file; each backend (OpenAI, Anthropic, Ollama) translates them to its
// SDK's native message and tool formats. Retry, backoff, and caching are
// deliberately absent: a failed call surfaces as an error and the caller
// decides what the run's output becomes.
package provider

import (
	"context"
	"encoding/json"

	"memchat/tools"
)

// Role identifies who produced a message in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a structured request from the backend to invoke a capability.
// ID correlates the eventual tool result back into the conversation;
// backends that do not issue IDs synthesize one.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// Message is one entry of the ordered conversation state.
// ToolCalls is set only on assistant messages; ToolCallID only on
// tool-result messages.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// Request is one synchronous exchange with the backend. Tools may be nil
// for baseline calls.
type Request struct {
	Model    string
	Messages []Message
	Tools    []tools.ToolDefinition
}

// Response is the assistant turn the backend produced: visible content
// plus zero or more tool calls, in the order the backend returned them.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Backend is the service boundary to a language model.
type Backend interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// parseArguments decodes a JSON argument payload into a map. A payload
// that fails to parse yields an empty map rather than an error; the tool
// layer reports missing parameters in its own words.
func parseArguments(raw string) map[string]any {
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}
