package history

import (
	"fmt"
	"testing"
)

func TestBufferAppendAndOrder(t *testing.T) {
	buf := NewBuffer(4)
	buf.Append("user", "hello")
	buf.Append("assistant", "hi there")
	msgs := buf.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Fatalf("unexpected roles: %v", msgs)
	}
}

func TestBufferEvictsOldest(t *testing.T) {
	buf := NewBuffer(3)
	for i := 0; i < 5; i++ {
		buf.Append("user", fmt.Sprintf("message %d", i))
	}
	msgs := buf.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "message 2" {
		t.Fatalf("expected oldest surviving message 2, got %q", msgs[0].Content)
	}
	if msgs[2].Content != "message 4" {
		t.Fatalf("expected newest message 4, got %q", msgs[2].Content)
	}
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer(0)
	buf.Append("user", "hello")
	buf.Reset()
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer after reset, got %d", buf.Len())
	}
}

func TestBufferCopyIsolation(t *testing.T) {
	buf := NewBuffer(4)
	buf.Append("user", "hello")
	msgs := buf.Messages()
	msgs[0].Content = "mutated"
	if buf.Messages()[0].Content != "hello" {
		t.Fatalf("buffer contents leaked through Messages copy")
	}
}
