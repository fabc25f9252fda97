// Package engine drives a conversation turn end to end: extraction,
// affect update, prompt assembly, the backend call, and persistence.
package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/conversation"
	"github.com/ONESO-goat/CODEX/internal/llm"
	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/memory"
	"github.com/ONESO-goat/CODEX/internal/opinion"
	"github.com/ONESO-goat/CODEX/internal/persona"
	"github.com/ONESO-goat/CODEX/internal/search"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

// The backend call never surfaces an error to the user; it degrades to
// one of these instead.
const (
	replyFoggy        = "I'm having trouble thinking right now. My mind feels foggy."
	replySlow         = "Sorry, I'm thinking too slowly. Please give me a moment?"
	replyDisconnected = "I can't seem to connect to my thoughts. Is my backend running?"
)

const (
	turnTimeout   = 10 * time.Minute
	historyWindow = 50
)

type Engine struct {
	backend  llm.LLM
	builder  *persona.Builder
	session  *conversation.Session
	store    *memory.Store
	core     *brain.Core
	opinions *opinion.System
	backup   *storage.Backup
	docs     *storage.DocStore
}

// New wires the engine and verifies the backend is reachable. An
// unreachable backend is unrecoverable: the caller must not proceed.
func New(ctx context.Context, backend llm.LLM, builder *persona.Builder, session *conversation.Session, store *memory.Store, core *brain.Core, docs *storage.DocStore) (*Engine, error) {
	if err := backend.Ping(ctx); err != nil {
		return nil, err
	}

	return &Engine{
		backend:  backend,
		builder:  builder,
		session:  session,
		store:    store,
		core:     core,
		opinions: opinion.NewSystem(core),
		docs:     docs,
	}, nil
}

// SetBackup enables mirroring of the JSON documents at session end.
func (e *Engine) SetBackup(b *storage.Backup) {
	e.backup = b
}

// Chat runs one user turn. Extraction and affect updates happen before
// the backend call; the reply (or an apology) is recorded afterwards.
func (e *Engine) Chat(ctx context.Context, text string) string {
	// History is captured before the turn is recorded so the current
	// message appears once in the final payload.
	history := e.session.History(historyWindow)

	e.session.Observe("user", text, nil)
	e.core.LearnNumbers(text)

	pkg := e.builder.Build(text, e.core, e.session.Profile(), history)

	system := pkg.SystemPrompt
	lower := strings.ToLower(text)
	if strings.Contains(lower, "death") || strings.Contains(lower, "dying") {
		system += "\n\n" + e.opinions.FearNarrative()
	}

	// Each mention of a known fact folds into the agent's stance on it.
	for _, hit := range search.Facts(text, e.session.Profile().Facts) {
		sentiment := hit.Data.Sentiment
		if hit.Data.Mood == memory.MoodDisliked || hit.Data.Mood == memory.MoodHated {
			sentiment = -sentiment
		}
		e.opinions.Form(hit.Fact, text, sentiment)
	}

	messages := append(pkg.History, llm.Message{Role: "user", Content: pkg.CurrentMessage})

	callCtx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()

	reply, err := e.backend.Chat(callCtx, system, messages)
	if err != nil {
		logger.Error("backend call failed", "error", err)
		e.core.AdjustConfidence(false)
		reply = fallbackReply(err)
	} else {
		e.core.AdjustConfidence(true)
	}
	e.core.PracticeSkill("conversation", err == nil)

	e.session.Observe("assistant", reply, nil)
	return reply
}

func fallbackReply(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return replySlow
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "not reachable") {
		return replyDisconnected
	}

	return replyFoggy
}

// EndSession persists the profile with bumped conversation count and
// mirrors the documents when a backup target is configured. Persistence
// failures are logged, never propagated.
func (e *Engine) EndSession(ctx context.Context) {
	profile := e.session.Profile()

	if err := e.store.SaveSession(profile); err != nil {
		logger.Error("failed to save session", "error", err)
	}

	// What was learnt about the user this session feeds the agent's own
	// trivia memory.
	labels := make([]string, 0, len(profile.Facts))
	for label := range profile.Facts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	e.core.AbsorbInfo(strings.Join(labels, " "))

	if e.backup != nil {
		if err := e.backup.Mirror(ctx, e.docs); err != nil {
			logger.Error("backup mirror failed", "error", err)
		}
	}
}

// Reset clears the short-term buffer only; the profile and agent state
// survive.
func (e *Engine) Reset() {
	e.session.Reset()
}

// Stats summarizes what the agent remembers about the current user.
func (e *Engine) Stats() memory.SummaryStats {
	return memory.Summarize(e.session.Profile())
}

// Opinions exposes the stances formed during this run.
func (e *Engine) Opinions() *opinion.System {
	return e.opinions
}
