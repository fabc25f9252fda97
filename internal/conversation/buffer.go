// Package conversation holds the rolling short-term buffer of turns and
// the session logic that reacts to each one. The buffer is in-memory
// only; long-term knowledge lives in the user profile.
package conversation

import (
	"sync"
	"time"
)

const defaultMaxTurns = 100

type Turn struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Buffer is a bounded, order-preserving turn window. When full, the
// oldest turn is evicted first.
type Buffer struct {
	mu       sync.Mutex
	turns    []Turn
	maxTurns int
}

func NewBuffer(maxTurns int) *Buffer {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &Buffer{maxTurns: maxTurns}
}

func (b *Buffer) Add(turn Turn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.turns) >= b.maxTurns {
		b.turns = b.turns[1:]
	}
	b.turns = append(b.turns, turn)
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.turns)
}

// Recent returns a copy of the newest n turns, oldest first. n <= 0
// returns the whole window.
func (b *Buffer) Recent(n int) []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()

	turns := b.turns
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}

	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return copied
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = nil
}
