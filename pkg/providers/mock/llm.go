// Package mock provides scriptable collaborators for tests and offline runs.
package mock

import (
	"context"

	"github.com/kiranalabs/kirana/pkg/llm"
)

type LLMConfig struct {
	ResponseText string
	ToolCall     *llm.RawToolCall
	Err          error
}

// LLMAdapter returns a fixed response, tool call, or error on every call.
type LLMAdapter struct {
	cfg LLMConfig
}

func NewLLMAdapter(cfg LLMConfig) *LLMAdapter {
	if cfg.ResponseText == "" && cfg.ToolCall == nil && cfg.Err == nil {
		cfg.ResponseText = "mock response"
	}
	return &LLMAdapter{cfg: cfg}
}

func (a *LLMAdapter) Name() string { return "mock_llm" }

func (a *LLMAdapter) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	if a.cfg.Err != nil {
		return llm.Response{}, a.cfg.Err
	}
	return llm.Response{Text: a.cfg.ResponseText, ToolCall: a.cfg.ToolCall}, nil
}

// ScriptedAdapter replays a sequence of responses, one per call.
type ScriptedAdapter struct {
	Responses []llm.Response
	Errs      []error
	calls     int
}

func (a *ScriptedAdapter) Name() string { return "scripted_llm" }

func (a *ScriptedAdapter) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	i := a.calls
	a.calls++
	if i < len(a.Errs) && a.Errs[i] != nil {
		return llm.Response{}, a.Errs[i]
	}
	if i < len(a.Responses) {
		return a.Responses[i], nil
	}
	return llm.Response{Text: "mock response"}, nil
}

var _ llm.Adapter = (*LLMAdapter)(nil)
var _ llm.Adapter = (*ScriptedAdapter)(nil)
