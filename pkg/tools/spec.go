package tools

import "context"

// ParamSpec describes one tool parameter.
type ParamSpec struct {
	Name     string
	Type     string
	Required bool
}

// ToolSpec declares a tool: its name, what it does, and the parameters it
// accepts. Specs are immutable after registration.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// Handler executes a tool against validated arguments.
type Handler func(ctx context.Context, args map[string]any) Result

// ArgSanitizer normalizes raw arguments before execution. Sanitizers must be
// pure and idempotent; they never fail.
type ArgSanitizer func(args map[string]any) map[string]any

// CallRequest is a structured tool invocation produced by the decision
// procedure from the model's output.
type CallRequest struct {
	Tool      string
	Arguments map[string]any
}

// JSONSchema renders the spec's parameters as a JSON schema document, used
// both for argument validation and for prompt construction.
func (s ToolSpec) JSONSchema() map[string]any {
	properties := map[string]any{}
	required := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		properties[p.Name] = map[string]any{"type": p.Type}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
