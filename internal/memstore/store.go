// Package memstore provides a sandboxed view of the memory directory.
//
// All tool-facing paths are relative to a single root configured at
// construction time. Read canonicalizes before the boundary check so that
// ".." segments, absolute arguments, and symlinked parents cannot escape
// the root no matter how the model phrases the path.
package memstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Store translates between tool-level relative paths and the physical
// memory directory. The core never writes under the root; the only
// mutation is lazily creating the root itself when it is absent.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory does not need to exist
// yet; Enumerate creates it on first use.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("memory directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("abs(%q): %w", dir, err)
	}
	// Resolve symlinks where possible so later boundary checks compare
	// canonical forms. A non-existent root falls back to the absolute path.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute sandbox root.
func (s *Store) Root() string { return s.root }

// Enumerate walks the root recursively and returns the sorted relative
// paths of every regular file whose own name does not start with ".".
// Hidden directories are descended into; only the leaf file name decides
// visibility. A missing root is created and yields an empty list.
func (s *Store) Enumerate() ([]string, error) {
	if _, err := os.Stat(s.root); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(s.root, 0o755); err != nil {
			return nil, fmt.Errorf("create memory root: %w", err)
		}
		return []string{}, nil
	}

	files := []string{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Read returns the UTF-8 content of the memory file at relPath, verbatim.
// Failures are reported as *StoreError with the appropriate kind.
func (s *Store) Read(relPath string) (string, error) {
	abs, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &StoreError{Kind: KindNotFound, Path: relPath}
		}
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", &StoreError{Kind: KindNotAFile, Path: relPath}
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &StoreError{
			Kind:   KindInvalidEncoding,
			Path:   relPath,
			Detail: fmt.Sprintf("invalid byte at offset %d", invalidOffset(b)),
		}
	}
	return string(b), nil
}

// resolve joins relPath to the root, canonicalizes the result, and verifies
// the canonical path is the root or a strict descendant of it. Absolute
// arguments are allowed through the same check: one that lands inside the
// root resolves normally, anything else is a sandbox violation.
func (s *Store) resolve(relPath string) (string, error) {
	candidate := relPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(s.root, filepath.FromSlash(relPath))
	}

	// Canonicalize before comparing: resolve the whole candidate when it
	// exists, otherwise its parent plus the final segment. This reveals
	// escapes through a symlinked parent.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else {
		parent := filepath.Dir(candidate)
		if resolvedParent, perr := filepath.EvalSymlinks(parent); perr == nil {
			candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
		}
	}

	rel, err := filepath.Rel(s.root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", &StoreError{Kind: KindSandboxViolation, Path: relPath}
	}
	return candidate, nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
