// Package decision turns a user utterance into a per-turn Decision: answer in
// natural language, or invoke exactly one registered tool. All "is this a
// tool call" ambiguity is isolated here.
package decision

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/kiranalabs/kirana/pkg/errorsx"
	"github.com/kiranalabs/kirana/pkg/llm"
	"github.com/kiranalabs/kirana/pkg/metrics"
	"github.com/kiranalabs/kirana/pkg/redact"
	"github.com/kiranalabs/kirana/pkg/tools"
)

// Kind tags the decision variant.
type Kind int

const (
	KindNaturalLanguage Kind = iota
	KindToolCall
)

// Decision is the per-turn outcome: either direct text or one tool call.
// Produced once per turn, never mutated.
type Decision struct {
	Kind Kind
	Text string
	Call *tools.CallRequest
}

// NaturalLanguage builds a direct-answer decision.
func NaturalLanguage(text string) Decision {
	return Decision{Kind: KindNaturalLanguage, Text: text}
}

// ToolCall builds a tool-invocation decision.
func ToolCall(call tools.CallRequest) Decision {
	return Decision{Kind: KindToolCall, Call: &call}
}

// FallbackText is the generic reply used when the model references a tool
// outside the registry. The hallucination is swallowed here, never surfaced
// to the user as a system fault.
const FallbackText = "Sorry, I can't help with that one. Could you rephrase your question?"

// Procedure consults the tool registry, invokes the model collaborator, and
// interprets its raw output.
type Procedure struct {
	adapter   llm.Adapter
	registry  *tools.Registry
	directive Directive
	obs       metrics.Observer
	log       *slog.Logger
}

func NewProcedure(adapter llm.Adapter, registry *tools.Registry, directive Directive) *Procedure {
	return &Procedure{
		adapter:   adapter,
		registry:  registry,
		directive: directive,
		obs:       metrics.NoopObserver{},
		log:       slog.Default(),
	}
}

func (p *Procedure) SetObserver(obs metrics.Observer) {
	if obs != nil {
		p.obs = obs
	}
}

func (p *Procedure) SetLogger(log *slog.Logger) {
	if log != nil {
		p.log = log
	}
}

// Decide maps an utterance plus conversation context to a Decision. The only
// error it returns is model unavailability, which is fatal for the turn.
func (p *Procedure) Decide(ctx context.Context, utterance string, history []llm.Message) (Decision, error) {
	specs := p.registry.Specs()
	req := llm.Request{
		System:   p.directive.Render(specs),
		Messages: append(history, llm.Message{Role: "user", Content: utterance}),
		Tools:    specs,
	}
	resp, err := p.adapter.Generate(ctx, req)
	if err != nil {
		p.record(metrics.EventModelFailure, nil)
		p.log.Error("model_unavailable", "provider", p.adapter.Name(), "error", err)
		return Decision{}, errorsx.Wrap(err, errorsx.ReasonModelUnavailable)
	}
	return p.interpret(resp), nil
}

// interpret converts raw model output into the tagged Decision variant.
func (p *Procedure) interpret(resp llm.Response) Decision {
	if resp.ToolCall != nil {
		return p.acceptCall(resp.ToolCall.Name, resp.ToolCall.Arguments)
	}
	if call, ok := parseInlineCall(resp.Text); ok {
		return p.acceptCall(call.Name, call.Arguments)
	}
	p.record(metrics.EventDecisionNatural, nil)
	return NaturalLanguage(strings.TrimSpace(resp.Text))
}

// acceptCall applies the swallow policy: a tool name outside the registry
// becomes a natural-language fallback instead of an error. The metrics event
// is the hook for treating swallowed hallucinations as a model-quality
// signal without touching dispatch logic.
func (p *Procedure) acceptCall(name string, args map[string]any) Decision {
	if !p.registry.Has(name) {
		p.record(metrics.EventUnknownToolSwallowed, map[string]string{"tool_name": name})
		p.log.Warn("unknown_tool_swallowed", "tool_name", name)
		return NaturalLanguage(FallbackText)
	}
	p.record(metrics.EventDecisionToolCall, map[string]string{"tool_name": name})
	if args == nil {
		args = map[string]any{}
	}
	return ToolCall(tools.CallRequest{Tool: name, Arguments: args})
}

func (p *Procedure) record(name string, tags map[string]string) {
	p.obs.RecordEvent(metrics.MetricsEvent{Name: name, Time: time.Now(), Value: 1, Tags: tags})
}

// inlineCall matches the JSON payload shape the directive asks the model to
// emit for tool invocations.
type inlineCall struct {
	Function  string         `json:"function"`
	Arguments map[string]any `json:"arguments"`
}

// parseInlineCall detects a structured tool invocation embedded in free text.
func parseInlineCall(text string) (llm.RawToolCall, bool) {
	payload := cleanJSON(text)
	if !strings.HasPrefix(payload, "{") {
		return llm.RawToolCall{}, false
	}
	var call inlineCall
	if err := json.Unmarshal([]byte(payload), &call); err != nil {
		slog.Debug("inline_call_parse_error", "error", err, "payload", redact.Text(payload))
		return llm.RawToolCall{}, false
	}
	if strings.TrimSpace(call.Function) == "" {
		return llm.RawToolCall{}, false
	}
	return llm.RawToolCall{Name: call.Function, Arguments: call.Arguments}, true
}

// cleanJSON strips markdown fences and surrounding chatter from a JSON
// payload embedded in model output.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
