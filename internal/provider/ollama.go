package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"

	"memchat/tools"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaBackend implements Backend against a local or remote Ollama server.
// Ollama tool calls carry no call identifiers, so Complete synthesizes one
// per call to keep the correlation contract uniform across backends.
type OllamaBackend struct {
	client *api.Client
}

// NewOllamaBackend creates an Ollama backend for the given server URL.
func NewOllamaBackend(baseURL string) (*OllamaBackend, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", baseURL, err)
	}
	return &OllamaBackend{client: api.NewClient(u, http.DefaultClient)}, nil
}

// Complete sends one non-streaming chat request.
func (b *OllamaBackend) Complete(ctx context.Context, req Request) (Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    req.Model,
		Messages: toOllamaMessages(req.Messages),
		Stream:   &stream,
	}
	if len(req.Tools) > 0 {
		ollamaTools, err := toOllamaTools(req.Tools)
		if err != nil {
			return Response{}, err
		}
		chatReq.Tools = ollamaTools
	}

	var content strings.Builder
	var calls []ToolCall
	err := b.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		for _, tc := range r.Message.ToolCalls {
			args := map[string]any(tc.Function.Arguments)
			if args == nil {
				args = map[string]any{}
			}
			calls = append(calls, ToolCall{
				ID:        uuid.NewString(),
				Name:      tc.Function.Name,
				Arguments: args,
			})
		}
		return nil
	})
	if err != nil {
		return Response{}, fmt.Errorf("ollama: %w", err)
	}
	return Response{Content: content.String(), ToolCalls: calls}, nil
}

func toOllamaMessages(messages []Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		msg := api.Message{Role: string(m.Role), Content: m.Content}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

// toOllamaTools converts the neutral schema through a JSON round-trip:
// both sides are plain JSON Schema, and the api package carries the
// struct tags to decode it.
func toOllamaTools(defs []tools.ToolDefinition) (api.Tools, error) {
	out := make(api.Tools, 0, len(defs))
	for _, d := range defs {
		raw, err := json.Marshal(d.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema for %s: %w", d.Name, err)
		}
		var params api.ToolFunctionParameters
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, fmt.Errorf("convert schema for %s: %w", d.Name, err)
		}
		out = append(out, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  params,
			},
		})
	}
	return out, nil
}
