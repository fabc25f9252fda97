package persona

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/conversation"
	"github.com/ONESO-goat/CODEX/internal/memory"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

func newTestBuilder(t *testing.T) (*Builder, *brain.Core, string) {
	t.Helper()

	dir := t.TempDir()
	character, err := Load(dir)
	if err != nil {
		t.Fatalf("load character: %v", err)
	}

	docs, err := storage.NewDocStore(filepath.Join(dir, "brain"))
	if err != nil {
		t.Fatalf("doc store: %v", err)
	}
	core, err := brain.Boot(docs, brain.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("boot: %v", err)
	}

	return NewBuilder(character, dir), core, dir
}

func profileWith(name string, facts map[string]*memory.FactRecord) *memory.Profile {
	if facts == nil {
		facts = make(map[string]*memory.FactRecord)
	}
	return &memory.Profile{
		UserID:      strings.ToLower(name),
		Name:        name,
		Facts:       facts,
		Preferences: make(map[string]any),
	}
}

func TestLoadWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	character, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(character.Personality.CoreTraits) == 0 {
		t.Error("expected default core traits")
	}
	if _, err := os.Stat(filepath.Join(dir, configFile)); err != nil {
		t.Errorf("expected %s written on first load: %v", configFile, err)
	}

	// A second load must read the file back, not regenerate it.
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again.Personality.CoreTraits) != len(character.Personality.CoreTraits) {
		t.Error("reload drifted from the written config")
	}
}

func TestBuildCreatorInjection(t *testing.T) {
	b, core, _ := newTestBuilder(t)
	p := profileWith("Julius", nil)

	pkg := b.Build("hello", core, p, nil)

	if !strings.Contains(pkg.SystemPrompt, "Julius is your creator") {
		t.Error("expected creator block in system prompt")
	}
	if strings.Contains(pkg.SystemPrompt, "YOU ARE CURRENTLY TALKING TO:") {
		t.Error("creator and known-user blocks must be mutually exclusive")
	}
}

func TestBuildKnownUserInjection(t *testing.T) {
	b, core, _ := newTestBuilder(t)
	p := profileWith("Alex", map[string]*memory.FactRecord{
		"gaming": {Mood: memory.MoodLiked},
	})

	pkg := b.Build("hello", core, p, nil)

	if !strings.Contains(pkg.SystemPrompt, "YOU ARE CURRENTLY TALKING TO: ALEX") {
		t.Error("expected known-user block with upper-cased name")
	}
	if !strings.Contains(pkg.SystemPrompt, "- gaming (liked)") {
		t.Error("expected fact list in injection")
	}
	if strings.Contains(pkg.SystemPrompt, "is your creator") {
		t.Error("creator block must not appear for a regular user")
	}
}

func TestBuildAnonymousUserNoInjection(t *testing.T) {
	b, core, _ := newTestBuilder(t)
	p := profileWith("", nil)

	pkg := b.Build("hello", core, p, nil)

	if strings.Contains(pkg.SystemPrompt, "CRITICAL CONTEXT") ||
		strings.Contains(pkg.SystemPrompt, "IMMEDIATE CONTEXT") {
		t.Error("expected no memory injection without a recognized name")
	}
	if !strings.Contains(pkg.SystemPrompt, NoUserContext) {
		t.Error("expected the no-context sentinel with an empty profile")
	}
}

func TestBuildContextSummaryBuckets(t *testing.T) {
	b, core, _ := newTestBuilder(t)
	p := profileWith("Alex", map[string]*memory.FactRecord{
		"gaming":  {Mood: memory.MoodLiked},
		"chess":   {Mood: memory.MoodLoved},
		"mondays": {Mood: memory.MoodHated},
	})

	pkg := b.Build("tell me about gaming", core, p, nil)

	for _, want := range []string{
		"They love: chess",
		"They like: gaming",
		"They hate: mondays",
		"RELEVANT INFORMATION FROM PAST CONVERSATIONS:",
		"You know they gaming",
	} {
		if !strings.Contains(pkg.SystemPrompt, want) {
			t.Errorf("missing %q in system prompt", want)
		}
	}
}

func TestBuildWritesSnapshotForRegularUser(t *testing.T) {
	b, core, dir := newTestBuilder(t)
	p := profileWith("Alex", map[string]*memory.FactRecord{
		"gaming": {Mood: memory.MoodLiked},
	})

	b.Build("hello", core, p, nil)

	if _, err := os.Stat(filepath.Join(dir, "the_user_alex.yaml")); err != nil {
		t.Errorf("expected prompt snapshot for regular user: %v", err)
	}
}

func TestBuildNoSnapshotForCreator(t *testing.T) {
	b, core, dir := newTestBuilder(t)
	p := profileWith("Julius", nil)

	b.Build("hello", core, p, nil)

	if _, err := os.Stat(filepath.Join(dir, "the_user_julius.yaml")); err == nil {
		t.Error("creator prompts must not be snapshotted")
	}
}

func TestBuildHistoryAndCurrentMessage(t *testing.T) {
	b, core, _ := newTestBuilder(t)
	p := profileWith("", nil)

	history := []conversation.Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	pkg := b.Build("new question", core, p, history)

	if len(pkg.History) != 2 || pkg.History[1].Role != "assistant" {
		t.Errorf("unexpected history: %+v", pkg.History)
	}
	if pkg.CurrentMessage != "new question" {
		t.Errorf("unexpected current message: %q", pkg.CurrentMessage)
	}
}
