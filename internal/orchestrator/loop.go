package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memchat/internal/provider"
	"memchat/tools"
)

// DefaultMaxRounds bounds the number of backend calls in one augmented
// run. Two rounds cover the minimal call/dispatch/follow-up shape; the
// headroom allows list-then-read-several sequences while still
// guaranteeing termination against a backend that keeps requesting tools.
const DefaultMaxRounds = 8

// ErrTurnLimit reports that the conversation failed to terminate within
// the bounded number of rounds. It aborts the run; it is never retried.
var ErrTurnLimit = errors.New("conversation exceeded the turn limit")

const augmentedInstructions = "Consult memory files when they are relevant to the conversation."

// loop drives the multi-turn exchange of one augmented run:
// AwaitingModel -> Dispatching -> AwaitingModel until the backend answers
// without tool calls or the round budget runs out.
type loop struct {
	backend   provider.Backend
	registry  *tools.Registry
	model     string
	maxRounds int
	sink      EventSink
}

// run returns the final assistant content and the dispatch-ordered event
// log. On error the events collected so far are still returned.
func (l *loop) run(ctx context.Context, prompt string) (string, []ToolCallEvent, error) {
	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: augmentedInstructions},
		{Role: provider.RoleUser, Content: prompt},
	}
	log := &EventLog{}

	for round := 0; round < l.maxRounds; round++ {
		resp, err := l.backend.Complete(ctx, provider.Request{
			Model:    l.model,
			Messages: messages,
			Tools:    l.registry.Definitions(),
		})
		if err != nil {
			return "", log.Events(), fmt.Errorf("backend call failed: %w", err)
		}

		messages = append(messages, provider.Message{
			Role:      provider.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if len(resp.ToolCalls) == 0 {
			return resp.Content, log.Events(), nil
		}

		// Dispatch in the order the backend returned the calls; each
		// result goes back into the conversation correlated by call ID.
		for _, call := range resp.ToolCalls {
			args := call.Arguments
			if args == nil {
				args = map[string]any{}
			}
			result := l.registry.Dispatch(call.Name, args)
			ev := ToolCallEvent{
				Timestamp: time.Now().Format(time.RFC3339Nano),
				ToolName:  call.Name,
				Arguments: args,
				Result:    result,
			}
			log.Append(ev)
			if l.sink != nil {
				l.sink.Emit("tool_call", map[string]any{
					"tool_name": ev.ToolName,
					"arguments": ev.Arguments,
					"result":    ev.Result,
				})
			}
			messages = append(messages, provider.Message{
				Role:       provider.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", log.Events(), ErrTurnLimit
}
