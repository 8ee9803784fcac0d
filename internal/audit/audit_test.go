package audit_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"memchat/internal/audit"
)

func TestEmit_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	w := audit.New(path)

	w.Emit("run_start", map[string]any{"model": "gpt-4o-mini"})
	w.Emit("tool_call", map[string]any{"tool_name": "list_memory_files"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0]["event"] != "run_start" || lines[0]["model"] != "gpt-4o-mini" {
		t.Fatalf("bad first record: %v", lines[0])
	}
	if lines[1]["event"] != "tool_call" {
		t.Fatalf("bad second record: %v", lines[1])
	}
	if _, ok := lines[0]["time"].(string); !ok {
		t.Fatalf("missing time field: %v", lines[0])
	}
}

func TestNewFromEnv_DisabledByDefault(t *testing.T) {
	t.Setenv("MEMCHAT_OBSERVE_JSON", "")
	if w := audit.NewFromEnv(); w != nil {
		t.Fatal("writer must be nil when observation is off")
	}
	t.Setenv("MEMCHAT_OBSERVE_JSON", "1")
	if w := audit.NewFromEnv(); w == nil {
		t.Fatal("writer expected when MEMCHAT_OBSERVE_JSON=1")
	}
}

func TestEmit_NilWriterIsSafe(t *testing.T) {
	var w *audit.Writer
	w.Emit("noop", nil)
}
