package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"memchat/internal/memstore"
)

// ReadMemoryFileInput is the declared parameter shape of read_memory_file.
type ReadMemoryFileInput struct {
	Path string `json:"path" jsonschema_description:"Relative path to the memory file to read"`
}

var readMemoryFileSchema = GenerateSchema[ReadMemoryFileInput]()
var listMemoryFilesSchema = GenerateSchema[struct{}]()

// NewListMemoryFiles returns the list_memory_files definition bound to store.
// The result is a newline-bulleted list of relative paths, or a sentinel
// string when the memory directory is empty.
func NewListMemoryFiles(store *memstore.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "list_memory_files",
		Description: "List all available memory files that can be read",
		InputSchema: listMemoryFilesSchema,
		Function: func(_ json.RawMessage) (string, error) {
			files, err := store.Enumerate()
			if err != nil {
				return "", err
			}
			if len(files) == 0 {
				return "No memory files found.", nil
			}
			var b strings.Builder
			for i, f := range files {
				if i > 0 {
					b.WriteByte('\n')
				}
				b.WriteString("- ")
				b.WriteString(f)
			}
			return b.String(), nil
		},
	}
}

// NewReadMemoryFile returns the read_memory_file definition bound to store.
// Success is a header line naming the path followed by the raw content.
func NewReadMemoryFile(store *memstore.Store) ToolDefinition {
	return ToolDefinition{
		Name:        "read_memory_file",
		Description: "Read the contents of a specific memory file",
		InputSchema: readMemoryFileSchema,
		Function: func(input json.RawMessage) (string, error) {
			var in ReadMemoryFileInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", err
			}
			if in.Path == "" {
				return "Error: 'path' parameter is required", nil
			}
			content, err := store.Read(in.Path)
			if err != nil {
				return fmt.Sprintf("Error reading %s: %v", in.Path, err), nil
			}
			return fmt.Sprintf("Contents of %s:\n\n%s", in.Path, content), nil
		},
	}
}
