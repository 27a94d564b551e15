package decision

import (
	"fmt"
	"strings"

	"github.com/kiranalabs/kirana/pkg/tools"
)

// DirectiveVersion identifies the current directive template. Bump it when
// the instruction wording changes so prompt changes are visible in logs and
// testable independently of dispatch.
const DirectiveVersion = "v1"

// Directive is the explicitly constructed instruction set sent to the model
// alongside the tool schemas. It is passed as a parameter, never process-wide
// state, so directive changes can be tested on their own.
type Directive struct {
	Version string
	Persona string
}

// DefaultDirective returns the stock directive for the assistant.
func DefaultDirective() Directive {
	return Directive{
		Version: DirectiveVersion,
		Persona: "You are a helpful voice assistant.",
	}
}

// Render builds the full system directive from the persona, the three
// mandatory routing rules, and the registered tool schemas.
func (d Directive) Render(specs []tools.ToolSpec) string {
	var b strings.Builder
	b.WriteString(d.Persona)
	b.WriteString("\n\nRULES:\n")
	b.WriteString("1. ARITHMETIC: any request for a math calculation or numeric computation, including ones phrased as plain questions (\"what is the square root of 16\"), MUST be answered with a JSON tool call for 'calculate'. Never answer arithmetic in natural language.\n")
	b.WriteString("2. TOOLS: only the tools listed below exist. Never invent or reference any other tool.\n")
	b.WriteString("3. ANSWERS: when a tool is used, the final reply contains only the answer. Do not narrate which tool or reasoning was used.\n")
	b.WriteString("\nTOOL OUTPUT FORMAT:\n")
	b.WriteString(`{"function": "tool_name", "arguments": {"arg_name": "arg_value"}}` + "\n")
	b.WriteString("\nAvailable tools:\n")
	for i, spec := range specs {
		fmt.Fprintf(&b, "%d. %s(%s) - %s\n", i+1, spec.Name, paramList(spec), spec.Description)
	}
	b.WriteString("\nExamples:\n")
	b.WriteString("User: \"Calculate 25 * 4\"\n")
	b.WriteString(`Assistant: {"function": "calculate", "arguments": {"expression": "25*4"}}` + "\n")
	b.WriteString("User: \"What is the square root of 144?\"\n")
	b.WriteString(`Assistant: {"function": "calculate", "arguments": {"expression": "sqrt(144)"}}` + "\n")
	b.WriteString("User: \"Find papers on quantum computing\"\n")
	b.WriteString(`Assistant: {"function": "search", "arguments": {"query": "quantum computing"}}` + "\n")
	b.WriteString("User: \"What is the capital of Canada?\"\n")
	b.WriteString("Assistant: The capital of Canada is Ottawa.\n")
	b.WriteString("\nIf no tool is needed, just answer in plain text.")
	return b.String()
}

func paramList(spec tools.ToolSpec) string {
	parts := make([]string, 0, len(spec.Params))
	for _, p := range spec.Params {
		parts = append(parts, p.Name+": "+p.Type)
	}
	return strings.Join(parts, ", ")
}
