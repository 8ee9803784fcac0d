// Package audit provides an optional JSONL sink for run and tool-call
// records. It is purely observational: failures are reported to stderr
// and never affect a run's outcome.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	envEnable   = "MEMCHAT_OBSERVE_JSON"
	defaultPath = ".memchat/events.jsonl"
)

// Writer appends one JSON object per line to a log file. A nil *Writer is
// valid and discards everything.
type Writer struct {
	mu   sync.Mutex
	path string
}

// New returns a writer appending to path.
func New(path string) *Writer {
	return &Writer{path: path}
}

// NewFromEnv returns a writer when MEMCHAT_OBSERVE_JSON=1, nil otherwise.
func NewFromEnv() *Writer {
	if os.Getenv(envEnable) != "1" {
		return nil
	}
	return New(defaultPath)
}

// Emit writes a single JSON line, augmenting fields with the record name
// and an RFC3339Nano timestamp. The callers' map is not mutated.
func (w *Writer) Emit(name string, fields map[string]any) {
	if w == nil {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit: marshal: %v\n", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "audit: mkdir %s: %v\n", dir, err)
			return
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit: open %s: %v\n", w.path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "audit: write %s: %v\n", w.path, err)
	}
}
