// Package tools defines the two memory capabilities exposed to the model
// and the registry that dispatches them.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive the parameter schema from Go structs.
//   - Registry: string-contract dispatch; failures become result strings.
package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToolDefinition describes one capability: the schema advertised to the
// backend and the function that executes a call.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema Parameters
	Function    func(input json.RawMessage) (string, error)
}

// Parameters is a provider-neutral JSON Schema fragment for a tool's input.
// Each backend converts it to its SDK's native tool format.
type Parameters struct {
	Type       string   `json:"type"`
	Properties any      `json:"properties,omitempty"`
	Required   []string `json:"required,omitempty"`
}

// GenerateSchema derives Parameters from the json/jsonschema tags of T.
func GenerateSchema[T any]() Parameters {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return Parameters{
		Type:       "object",
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}
