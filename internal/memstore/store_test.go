package memstore_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"memchat/internal/memstore"
)

func newStore(t *testing.T, dir string) *memstore.Store {
	t.Helper()
	s, err := memstore.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func write(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}

func TestEnumerate_MissingRootIsCreated(t *testing.T) {
	root := filepath.Join(t.TempDir(), "memory")
	s := newStore(t, root)

	files, err := s.Enumerate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("want empty list, got %v", files)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("root was not created: %v", err)
	}
}

func TestEnumerate_SortedRecursiveForwardSlash(t *testing.T) {
	root := t.TempDir()
	write(t, root, "zebra.txt", "")
	write(t, root, "alpha.txt", "")
	write(t, root, "sub/nested.txt", "")
	s := newStore(t, root)

	files, err := s.Enumerate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"alpha.txt", "sub/nested.txt", "zebra.txt"}
	if len(files) != len(want) {
		t.Fatalf("got %v want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v want %v", files, want)
		}
	}
}

func TestEnumerate_HiddenLeafExcludedHiddenDirDescended(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".secret", "")
	write(t, root, "sub/.hidden", "")
	write(t, root, ".hiddendir/visible.txt", "")
	write(t, root, "plain.txt", "")
	s := newStore(t, root)

	files, err := s.Enumerate()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	set := map[string]bool{}
	for _, f := range files {
		set[f] = true
	}
	if set[".secret"] || set["sub/.hidden"] {
		t.Fatalf("hidden leaf files must be excluded: %v", files)
	}
	// Only the leaf name is checked; files under a hidden directory stay visible.
	if !set[".hiddendir/visible.txt"] {
		t.Fatalf("file under hidden directory missing: %v", files)
	}
	if !set["plain.txt"] {
		t.Fatalf("plain.txt missing: %v", files)
	}
}

func TestRead_RoundTrip(t *testing.T) {
	root := t.TempDir()
	content := "the answer is 42\n\ttrailing tab\n"
	write(t, root, "notes.txt", content)
	s := newStore(t, root)

	got, err := s.Read("notes.txt")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != content {
		t.Fatalf("content altered: got %q want %q", got, content)
	}
}

func TestRead_Traversal(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "memory")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret"), []byte("s3cret"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, root)

	for _, p := range []string{"../secret", "sub/../../secret", "../../etc/passwd"} {
		got, err := s.Read(p)
		if err == nil {
			t.Fatalf("expected sandbox violation for %q, got content %q", p, got)
		}
		if memstore.KindOf(err) != memstore.KindSandboxViolation {
			t.Fatalf("wrong kind for %q: %v", p, err)
		}
	}
}

func TestRead_AbsolutePathOutsideRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "leak.txt")
	if err := os.WriteFile(outside, []byte("leak"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, root)

	if _, err := s.Read(outside); memstore.KindOf(err) != memstore.KindSandboxViolation {
		t.Fatalf("want sandbox violation, got %v", err)
	}
}

func TestRead_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test skipped on Windows")
	}
	root := t.TempDir()
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "escape.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "out")); err != nil {
		t.Skipf("symlink not allowed on this FS: %v", err)
	}
	s := newStore(t, root)

	if _, err := s.Read("out/escape.txt"); memstore.KindOf(err) != memstore.KindSandboxViolation {
		t.Fatalf("want sandbox violation, got %v", err)
	}
}

func TestRead_NotFound(t *testing.T) {
	s := newStore(t, t.TempDir())
	if _, err := s.Read("nope.txt"); memstore.KindOf(err) != memstore.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRead_Directory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, root)
	if _, err := s.Read("dir"); memstore.KindOf(err) != memstore.KindNotAFile {
		t.Fatalf("want not-a-file, got %v", err)
	}
}

func TestRead_InvalidEncoding(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bin.dat"), []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, root)
	_, err := s.Read("bin.dat")
	if memstore.KindOf(err) != memstore.KindInvalidEncoding {
		t.Fatalf("want invalid encoding, got %v", err)
	}
}
