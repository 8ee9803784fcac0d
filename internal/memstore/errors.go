package memstore

import "fmt"

// ErrorKind classifies the ways a memory-file operation can fail.
type ErrorKind string

const (
	// KindSandboxViolation means the requested path resolves outside the memory root.
	KindSandboxViolation ErrorKind = "sandbox_violation"
	// KindNotFound means no file exists at the requested path.
	KindNotFound ErrorKind = "not_found"
	// KindNotAFile means the path names a directory or special file.
	KindNotAFile ErrorKind = "not_a_file"
	// KindInvalidEncoding means the file's bytes are not valid UTF-8.
	KindInvalidEncoding ErrorKind = "invalid_encoding"
)

// StoreError carries the failure kind alongside the offending path so the
// registry layer can render it as a tool-result string without losing the
// classification.
type StoreError struct {
	Kind   ErrorKind
	Path   string
	Detail string
}

func (e *StoreError) Error() string {
	switch e.Kind {
	case KindSandboxViolation:
		return fmt.Sprintf("path outside memory directory: %s", e.Path)
	case KindNotFound:
		return fmt.Sprintf("memory file not found: %s", e.Path)
	case KindNotAFile:
		return fmt.Sprintf("path is not a file: %s", e.Path)
	case KindInvalidEncoding:
		return fmt.Sprintf("file %s is not valid UTF-8: %s", e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// KindOf returns the ErrorKind of err when it is a StoreError, or "" otherwise.
func KindOf(err error) ErrorKind {
	if se, ok := err.(*StoreError); ok {
		return se.Kind
	}
	return ""
}
