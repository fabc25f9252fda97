package conversation

import (
	"time"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/memory"
)

// Reflector is the slice of the brain core a session needs: affect
// updates on user turns, introspection after assistant turns.
type Reflector interface {
	SetMood(text string)
	Introspect() (string, bool)
}

// Session ties the rolling buffer to the profile: every user turn runs
// fact extraction and an affect update, every assistant turn triggers
// introspection.
type Session struct {
	buffer    *Buffer
	profile   *memory.Profile
	extractor *memory.Extractor
	reflector Reflector
	now       func() time.Time
}

func NewSession(buffer *Buffer, profile *memory.Profile, extractor *memory.Extractor, reflector Reflector) *Session {
	return &Session{
		buffer:    buffer,
		profile:   profile,
		extractor: extractor,
		reflector: reflector,
		now:       time.Now,
	}
}

// Observe records one turn and fires the per-turn side effects.
func (s *Session) Observe(role, content string, metadata map[string]string) {
	switch role {
	case "user":
		s.extractor.Extract(content, s.profile)
		s.reflector.SetMood(content)
	case "assistant":
		if thought, ok := s.reflector.Introspect(); ok {
			logger.Debug("introspection", "thought", thought)
		}
	}

	s.buffer.Add(Turn{
		Role:      role,
		Content:   content,
		Timestamp: s.now().UTC(),
		Metadata:  metadata,
	})
}

// Reset clears the short-term buffer and settles the agent's mood back
// to baseline. The profile and agent state survive a reset.
func (s *Session) Reset() {
	s.buffer.Clear()
	s.reflector.SetMood(brain.ResetPhrase)
}

// History returns the newest n turns for prompt assembly.
func (s *Session) History(n int) []Turn {
	return s.buffer.Recent(n)
}

func (s *Session) Profile() *memory.Profile {
	return s.profile
}
