package metrics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

type syncBuffer struct {
	bytes.Buffer
	syncs int
}

func (b *syncBuffer) Sync() error {
	b.syncs++
	return nil
}

func TestJSONLObserverWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewJSONLObserver(&buf)
	obs.RecordEvent(MetricsEvent{
		Name:  EventToolExecuted,
		Time:  time.Now(),
		Value: 1,
		Tags:  map[string]string{"tool_name": "calculate"},
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["name"] != EventToolExecuted {
		t.Fatalf("expected event name %q, got %v", EventToolExecuted, line["name"])
	}
	if line["tool_name"] != "calculate" {
		t.Fatalf("expected tool tag, got %v", line["tool_name"])
	}
}

func TestJSONLObserverFlushSyncsWriter(t *testing.T) {
	buf := &syncBuffer{}
	obs := NewJSONLObserver(buf)
	if err := obs.Flush(); err != nil {
		t.Fatalf("flush error: %v", err)
	}
	if buf.syncs != 1 {
		t.Fatalf("expected one sync, got %d", buf.syncs)
	}
}

func TestJSONLObserverFlushWithoutSyncer(t *testing.T) {
	obs := NewJSONLObserver(&bytes.Buffer{})
	if err := obs.Flush(); err != nil {
		t.Fatalf("flush should be a no-op for plain writers, got %v", err)
	}
}
