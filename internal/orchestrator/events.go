package orchestrator

// ToolCallEvent is the immutable audit record of one resolved tool call.
// The result string carries either the success payload or the rendered
// error message; the log does not distinguish the two, mirroring the
// uniform string contract of tool execution.
type ToolCallEvent struct {
	Timestamp string         `json:"timestamp"`
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
	Result    string         `json:"result"`
}

// EventLog is the append-only, dispatch-ordered record of tool calls for
// one augmented run. Events are never reordered or deduplicated.
type EventLog struct {
	events []ToolCallEvent
}

// Append adds one event at the end of the log.
func (l *EventLog) Append(ev ToolCallEvent) {
	l.events = append(l.events, ev)
}

// Events returns a copy of the log in append order, never nil.
func (l *EventLog) Events() []ToolCallEvent {
	out := make([]ToolCallEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventSink receives a side-channel copy of run records, e.g. the JSONL
// audit writer. A nil sink is valid and means no side channel.
type EventSink interface {
	Emit(name string, fields map[string]any)
}
