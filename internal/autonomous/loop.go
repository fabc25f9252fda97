// Package autonomous runs the agent's background existence: a scheduled
// tick that refreshes its age, occasionally records a thought, and
// flushes the thought log to storage.
package autonomous

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

type Thought struct {
	Thought   string    `json:"thought"`
	Timestamp time.Time `json:"timestamp"`
}

type Options struct {
	Schedule    string  // cron spec, e.g. "@every 1s"
	FlushEvery  int     // flush the log every N ticks
	ThinkChance float64 // probability of a thought per tick
	Rand        *rand.Rand
}

// Loop shares the brain core with the conversation flow but only calls
// its thread-safe methods; last writer wins on the persisted documents.
type Loop struct {
	core *brain.Core
	docs *storage.DocStore
	cron *cron.Cron
	opts Options

	mu       sync.Mutex
	thoughts []Thought
	ticks    int
}

func New(core *brain.Core, docs *storage.DocStore, opts Options) *Loop {
	if opts.Schedule == "" {
		opts.Schedule = "@every 1s"
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = 5
	}
	if opts.ThinkChance == 0 {
		opts.ThinkChance = 0.05
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Loop{core: core, docs: docs, opts: opts}
}

// Start schedules the tick and writes out the (possibly empty) thought
// log so the document exists from boot. Runs until ctx is cancelled.
func (l *Loop) Start(ctx context.Context) error {
	l.flush()

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(l.opts.Schedule, l.Tick); err != nil {
		return fmt.Errorf("bad thought schedule %q: %w", l.opts.Schedule, err)
	}

	l.cron = c
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
		l.flush()
		logger.Debug("autonomous loop stopped")
	}()

	return nil
}

// Tick is one beat of background existence.
func (l *Loop) Tick() {
	l.core.UpdateAge()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.opts.Rand.Float64() < l.opts.ThinkChance {
		if thought, ok := l.core.Introspect(); ok {
			l.thoughts = append(l.thoughts, Thought{
				Thought:   thought,
				Timestamp: time.Now().UTC(),
			})
			logger.Info("thinking", "thought", thought)
		}
	}

	l.ticks++
	if l.ticks%l.opts.FlushEvery == 0 {
		l.flushLocked()
	}
}

// InitiateConversation picks an opener the agent could use to start
// talking on its own.
func (l *Loop) InitiateConversation() string {
	openers := []string{
		"Hey, I was just thinking about something...",
		"Can I ask you something random?",
		"You know what's weird?",
		fmt.Sprintf("I've been alive for %.2f hours now. Time is strange.", l.core.AgeHours()),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return openers[l.opts.Rand.Intn(len(openers))]
}

// Thoughts returns a copy of the in-memory thought log.
func (l *Loop) Thoughts() []Thought {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := make([]Thought, len(l.thoughts))
	copy(copied, l.thoughts)
	return copied
}

func (l *Loop) flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushLocked()
}

func (l *Loop) flushLocked() {
	thoughts := l.thoughts
	if thoughts == nil {
		thoughts = []Thought{}
	}
	if err := l.docs.Save(l.core.Name()+"_thoughts", thoughts); err != nil {
		logger.Error("failed to persist thoughts", "error", err)
	}
}
