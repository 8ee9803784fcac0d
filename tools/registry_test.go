package tools_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"memchat/internal/memstore"
	"memchat/tools"
)

func newRegistry(t *testing.T, root string) *tools.Registry {
	t.Helper()
	store, err := memstore.New(root)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return tools.NewRegistry(store)
}

func seed(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDispatch_ListEmpty(t *testing.T) {
	r := newRegistry(t, t.TempDir())
	got := r.Dispatch("list_memory_files", nil)
	if got != "No memory files found." {
		t.Fatalf("got %q", got)
	}
}

func TestDispatch_ListBulleted(t *testing.T) {
	root := t.TempDir()
	seed(t, root, "b.txt", "")
	seed(t, root, "a.txt", "")
	seed(t, root, "sub/c.txt", "")
	r := newRegistry(t, root)

	got := r.Dispatch("list_memory_files", map[string]any{})
	want := "- a.txt\n- b.txt\n- sub/c.txt"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDispatch_ReadSuccessFormat(t *testing.T) {
	root := t.TempDir()
	seed(t, root, "notes.txt", "the answer is 42")
	r := newRegistry(t, root)

	got := r.Dispatch("read_memory_file", map[string]any{"path": "notes.txt"})
	want := "Contents of notes.txt:\n\nthe answer is 42"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDispatch_ReadMissingArgument(t *testing.T) {
	r := newRegistry(t, t.TempDir())
	got := r.Dispatch("read_memory_file", map[string]any{})
	if got != "Error: 'path' parameter is required" {
		t.Fatalf("got %q", got)
	}
}

func TestDispatch_ReadNotFound(t *testing.T) {
	r := newRegistry(t, t.TempDir())
	got := r.Dispatch("read_memory_file", map[string]any{"path": "missing.txt"})
	if !strings.HasPrefix(got, "Error reading missing.txt:") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "not found") {
		t.Fatalf("want not-found reason, got %q", got)
	}
}

func TestDispatch_ReadTraversalNeverLeaksContent(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "memory")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret"), []byte("s3cret"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newRegistry(t, root)

	got := r.Dispatch("read_memory_file", map[string]any{"path": "../secret"})
	if !strings.Contains(got, "outside memory directory") {
		t.Fatalf("want sandbox violation message, got %q", got)
	}
	if strings.Contains(got, "s3cret") {
		t.Fatalf("file content leaked: %q", got)
	}
}

func TestDispatch_UnknownTool(t *testing.T) {
	r := newRegistry(t, t.TempDir())
	got := r.Dispatch("write_memory_file", map[string]any{"path": "x"})
	if got != "Error: Unknown tool 'write_memory_file'" {
		t.Fatalf("got %q", got)
	}
}

func TestDefinitions_StaticPair(t *testing.T) {
	r := newRegistry(t, t.TempDir())
	defs := r.Definitions()
	if len(defs) != 2 {
		t.Fatalf("want exactly two tools, got %d", len(defs))
	}
	if defs[0].Name != "list_memory_files" || defs[1].Name != "read_memory_file" {
		t.Fatalf("unexpected names: %s, %s", defs[0].Name, defs[1].Name)
	}
	if len(defs[1].InputSchema.Required) != 1 || defs[1].InputSchema.Required[0] != "path" {
		t.Fatalf("read_memory_file must require path: %v", defs[1].InputSchema.Required)
	}
}
