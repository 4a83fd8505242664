// Package tools defines the provider-agnostic tool-calling surface of the
// insight hub: the schema types an LLM needs to discover a tool, the Executor
// contract every tool implements, and the registry that dispatches calls by
// name. Tool arguments arrive as a JSON string produced by the model and tool
// results are returned as a JSON string, so the same catalog can back both
// the in-process client and the stdio tool server.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is the schema of a callable function as described to the LLM.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function carries the name, description, and parameter schema of a tool.
// The description matters: the model uses it to decide when to call the tool.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a minimal, type-safe subset of JSON Schema sufficient for
// declaring tool parameters. The top-level schema is always an "object".
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ToolCall is a request from the LLM to execute one tool.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the tool the model wants and carries its arguments
// as a JSON object string.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Executor is the contract every tool implements. Execute receives the
// argument JSON generated by the model and returns a JSON document the model
// can read back. Recoverable problems (bad filters, empty result sets) belong
// inside that document; the error return is reserved for malformed argument
// payloads and marshaling failures.
type Executor interface {
	Definition() Tool
	Execute(arguments string) (string, error)
}

// NewFunctionTool builds a Tool with the conventional "function" type.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
