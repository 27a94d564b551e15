// Package dispatch routes per-turn decisions to tool executions and merges
// the results into a single final answer. Every failure below model
// unavailability is recovered here and converted into user-facing text.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kiranalabs/kirana/pkg/decision"
	"github.com/kiranalabs/kirana/pkg/llm"
	"github.com/kiranalabs/kirana/pkg/metrics"
	"github.com/kiranalabs/kirana/pkg/redact"
	"github.com/kiranalabs/kirana/pkg/tools"
)

// Stable user-facing messages. Internal error codes never leak past these.
const (
	apologyGeneric    = "Sorry, something went wrong on my end. Please try again."
	apologyCalculator = "Sorry, I couldn't work that calculation out."
	apologySearch     = "Sorry, the paper search isn't available right now."
	msgBadCalcArgs    = "Sorry, I could not understand the calculation you asked for."
	msgBadSearchArgs  = "Sorry, I could not understand what you want me to search for."
)

var apologies = map[string]string{
	tools.ErrCodeEvaluation:        apologyCalculator,
	tools.ErrCodeSearchUnavailable: apologySearch,
}

var malformedMessages = map[string]string{
	"calculate": msgBadCalcArgs,
	"search":    msgBadSearchArgs,
}

// Dispatcher drives one turn through deciding, sanitizing, executing, and
// responding. It holds no per-turn state; it is safe to call HandleTurn from
// concurrent turns.
type Dispatcher struct {
	procedure *decision.Procedure
	registry  *tools.Registry
	obs       metrics.Observer
	log       *slog.Logger
}

func New(procedure *decision.Procedure, registry *tools.Registry) *Dispatcher {
	return &Dispatcher{
		procedure: procedure,
		registry:  registry,
		obs:       metrics.NoopObserver{},
		log:       slog.Default(),
	}
}

func (d *Dispatcher) SetObserver(obs metrics.Observer) {
	if obs != nil {
		d.obs = obs
	}
}

func (d *Dispatcher) SetLogger(log *slog.Logger) {
	if log != nil {
		d.log = log
	}
}

// HandleTurn is the single externally invoked entry point: one utterance in,
// one answer out. The returned error is non-nil only when the model
// collaborator is unavailable; everything else resolves to answer text.
func (d *Dispatcher) HandleTurn(ctx context.Context, utterance string, history []llm.Message) (string, error) {
	turnID := uuid.NewString()
	log := d.log.With("turn_id", turnID)
	machine := newTurnMachine()
	started := time.Now()

	dec, err := d.procedure.Decide(ctx, utterance, history)
	if err != nil {
		_ = machine.Transition(StateFailed)
		log.Error("turn_failed", "state", machine.State().String(), "error", err)
		return "", err
	}

	if dec.Kind == decision.KindNaturalLanguage {
		_ = machine.Transition(StateResponding)
		d.recordTurn(started, "natural_language")
		return dec.Text, nil
	}

	answer := d.executeCall(ctx, machine, log, *dec.Call)
	d.recordTurn(started, dec.Call.Tool)
	return answer, nil
}

// executeCall validates, sanitizes, and runs a tool call, mapping every
// failure to a stable apology.
func (d *Dispatcher) executeCall(ctx context.Context, machine *turnMachine, log *slog.Logger, call tools.CallRequest) string {
	entry, err := d.registry.Lookup(call.Tool)
	if err != nil {
		// The decision procedure swallows unknown tools, so reaching this
		// branch means an invariant broke upstream.
		log.Error("dispatch_unknown_tool", "tool_name", call.Tool)
		return apologyGeneric
	}

	if err := tools.ValidateArguments(entry.Spec, call.Arguments); err != nil {
		log.Warn("malformed_tool_arguments", "tool_name", call.Tool, "error", err)
		if msg, ok := malformedMessages[call.Tool]; ok {
			return msg
		}
		return apologyGeneric
	}

	args := call.Arguments
	if entry.Sanitize != nil {
		if err := machine.Transition(StateSanitizing); err != nil {
			log.Error("dispatch_transition_error", "error", err)
			return apologyGeneric
		}
		args = entry.Sanitize(args)
	}
	if err := machine.Transition(StateExecuting); err != nil {
		log.Error("dispatch_transition_error", "error", err)
		return apologyGeneric
	}

	result := entry.Handler(ctx, args)
	_ = machine.Transition(StateResponding)
	if !result.Success {
		d.record(metrics.EventToolFailed, map[string]string{"tool_name": call.Tool, "error_code": result.Err})
		log.Warn("tool_failed", "tool_name", call.Tool, "error_code", result.Err)
		if apology, ok := apologies[result.Err]; ok {
			return apology
		}
		return apologyGeneric
	}
	d.record(metrics.EventToolExecuted, map[string]string{"tool_name": call.Tool})
	log.Info("tool_executed", "tool_name", call.Tool, "value", redact.Text(result.Value))
	return result.Value
}

func (d *Dispatcher) record(name string, tags map[string]string) {
	d.obs.RecordEvent(metrics.MetricsEvent{Name: name, Time: time.Now(), Value: 1, Tags: tags})
}

func (d *Dispatcher) recordTurn(started time.Time, route string) {
	d.obs.RecordEvent(metrics.MetricsEvent{
		Name:  metrics.EventTurnCompleted,
		Time:  time.Now(),
		Value: float64(time.Since(started).Milliseconds()),
		Tags:  map[string]string{"route": route},
	})
}
