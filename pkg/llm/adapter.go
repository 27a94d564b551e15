package llm

import (
	"context"

	"github.com/kiranalabs/kirana/pkg/tools"
)

// Message is one turn of conversation history.
type Message struct {
	Role    string
	Content string
}

// Request carries everything the model needs for one inference: the fixed
// system directives, the rolling conversation, and the tool schemas. The
// schema shape is deterministic across calls; only content varies.
type Request struct {
	System   string
	Messages []Message
	Tools    []tools.ToolSpec
}

// RawToolCall is a structured tool invocation parsed out of provider output.
// It is raw: the name may be hallucinated and the arguments unvalidated.
type RawToolCall struct {
	Name      string
	Arguments map[string]any
}

// Response is the model's raw output: plain text, or a tool call, or both
// (text is ignored when a tool call is present).
type Response struct {
	Text     string
	ToolCall *RawToolCall
}

// Adapter is the model collaborator. Implementations must not hang
// indefinitely; they honor ctx and surface transport failures as errors.
type Adapter interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}
