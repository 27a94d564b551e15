// Package history keeps a rolling per-session conversation transcript that
// feeds the decision procedure as context.
package history

import (
	"sync"

	"github.com/kiranalabs/kirana/pkg/llm"
)

const DefaultMaxEntries = 10

// Buffer is a bounded conversation transcript. Appends beyond the cap evict
// the oldest entries.
type Buffer struct {
	mu      sync.Mutex
	entries []llm.Message
	max     int
}

func NewBuffer(maxEntries int) *Buffer {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Buffer{max: maxEntries}
}

// Append adds one message, evicting from the front when over capacity.
func (b *Buffer) Append(role, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, llm.Message{Role: role, Content: content})
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
}

// Messages returns a copy of the current transcript in order.
func (b *Buffer) Messages() []llm.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]llm.Message, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of buffered messages.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Reset clears the transcript.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()
}
