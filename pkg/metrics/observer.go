package metrics

import "time"

type MetricsEvent struct {
	Name   string
	Time   time.Time
	Value  float64
	Tags   map[string]string
	Fields map[string]any
}

// Event names emitted by the turn pipeline.
const (
	EventDecisionNatural      = "decision_natural_language"
	EventDecisionToolCall     = "decision_tool_call"
	EventUnknownToolSwallowed = "decision_unknown_tool_swallowed"
	EventToolExecuted         = "tool_executed"
	EventToolFailed           = "tool_failed"
	EventModelFailure         = "model_failure"
	EventTurnCompleted        = "turn_completed"
)

type Observer interface {
	RecordEvent(ev MetricsEvent)
}

type Flusher interface {
	Flush() error
}

type NoopObserver struct{}

func (NoopObserver) RecordEvent(MetricsEvent) {}
