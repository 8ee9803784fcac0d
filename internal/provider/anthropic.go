package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"memchat/tools"
)

const anthropicMaxTokens = 4096 // required by the Messages API

// AnthropicBackend implements Backend over the official Anthropic Go SDK
// using the Messages API with tool_use/tool_result blocks.
type AnthropicBackend struct {
	client *anthropic.Client
}

// NewAnthropicBackend creates an Anthropic backend. baseURL may be empty
// for the public API; apiKey is required.
func NewAnthropicBackend(baseURL, apiKey string) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AnthropicBackend{client: &client}, nil
}

// Complete sends one non-streaming Messages request.
func (b *AnthropicBackend) Complete(ctx context.Context, req Request) (Response, error) {
	messages, system := toAnthropicMessages(req.Messages)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: anthropicMaxTokens,
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("anthropic: %w", err)
	}

	var resp Response
	var text []string
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			text = append(text, v.Text)
		case anthropic.ToolUseBlock:
			var args map[string]any
			if err := json.Unmarshal([]byte(v.JSON.Input.Raw()), &args); err != nil || args == nil {
				args = map[string]any{}
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: v.ID, Name: v.Name, Arguments: args})
		}
	}
	resp.Content = strings.Join(text, "\n")
	return resp, nil
}

// toAnthropicMessages converts the neutral conversation to Anthropic
// params. System messages are lifted out into the system prompt, and runs
// of consecutive tool-result messages are grouped into a single user turn
// because the API expects every tool_result in the message immediately
// following its tool_use.
func toAnthropicMessages(messages []Message) ([]anthropic.MessageParam, string) {
	out := make([]anthropic.MessageParam, 0, len(messages))
	var system []string

	for i := 0; i < len(messages); i++ {
		m := messages[i]
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{ID: tc.ID, Input: tc.Arguments, Name: tc.Name},
				})
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		case RoleTool:
			var results []anthropic.ContentBlockParamUnion
			for i < len(messages) && messages[i].Role == RoleTool {
				results = append(results, anthropic.NewToolResultBlock(messages[i].ToolCallID, messages[i].Content, false))
				i++
			}
			i--
			out = append(out, anthropic.NewUserMessage(results...))
		}
	}
	return out, strings.Join(system, "\n")
}

func toAnthropicTools(defs []tools.ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, d := range defs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        d.Name,
			Description: anthropic.String(d.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: d.InputSchema.Properties,
				Required:   d.InputSchema.Required,
			},
		}})
	}
	return out
}
