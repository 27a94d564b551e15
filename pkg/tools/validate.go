package tools

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kiranalabs/kirana/pkg/errorsx"
)

// ValidateArguments checks raw call arguments against the spec's schema.
// A failure means the model produced missing or mistyped parameters; the
// dispatcher maps it to a non-fatal user message.
func ValidateArguments(spec ToolSpec, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	schema := gojsonschema.NewGoLoader(spec.JSONSchema())
	document := gojsonschema.NewGoLoader(args)
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return errorsx.Wrap(fmt.Errorf("validate %s arguments: %w", spec.Name, err), errorsx.ReasonMalformedArguments)
	}
	if !result.Valid() {
		first := ""
		if errs := result.Errors(); len(errs) > 0 {
			first = errs[0].String()
		}
		return errorsx.Wrap(fmt.Errorf("invalid arguments for %s: %s", spec.Name, first), errorsx.ReasonMalformedArguments)
	}
	return nil
}

// StringArg extracts a required string argument after validation.
func StringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}
