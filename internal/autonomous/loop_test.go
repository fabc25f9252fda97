package autonomous

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

func newTestLoop(t *testing.T, opts Options) (*Loop, *storage.DocStore) {
	t.Helper()

	docs, err := storage.NewDocStore(filepath.Join(t.TempDir(), "brain"))
	if err != nil {
		t.Fatalf("doc store: %v", err)
	}
	core, err := brain.Boot(docs, brain.WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	return New(core, docs, opts), docs
}

func TestTickAlwaysThinksAtFullChance(t *testing.T) {
	l, _ := newTestLoop(t, Options{
		ThinkChance: 1.0,
		FlushEvery:  100,
		Rand:        rand.New(rand.NewSource(1)),
	})

	for i := 0; i < 3; i++ {
		l.Tick()
	}

	thoughts := l.Thoughts()
	if len(thoughts) != 3 {
		t.Fatalf("expected 3 thoughts, got %d", len(thoughts))
	}
	for _, th := range thoughts {
		if th.Thought == "" || th.Timestamp.IsZero() {
			t.Errorf("incomplete thought record: %+v", th)
		}
	}
}

func TestTickFlushesOnSchedule(t *testing.T) {
	l, docs := newTestLoop(t, Options{
		ThinkChance: 1.0,
		FlushEvery:  2,
		Rand:        rand.New(rand.NewSource(1)),
	})

	l.Tick()
	if docs.Exists("Codex_thoughts") {
		t.Fatal("expected no flush before the interval")
	}

	l.Tick()
	var persisted []Thought
	if err := docs.Load("Codex_thoughts", &persisted); err != nil {
		t.Fatalf("load thoughts: %v", err)
	}
	if len(persisted) != 2 {
		t.Errorf("expected 2 persisted thoughts, got %d", len(persisted))
	}
}

func TestTickRefreshesAge(t *testing.T) {
	l, _ := newTestLoop(t, Options{
		ThinkChance: 0.0001,
		Rand:        rand.New(rand.NewSource(1)),
	})

	l.Tick()
	if age := l.core.AgeHours(); age < 0 {
		t.Errorf("expected non-negative age, got %v", age)
	}
}

func TestInitiateConversationReturnsOpener(t *testing.T) {
	l, _ := newTestLoop(t, Options{Rand: rand.New(rand.NewSource(1))})

	if opener := l.InitiateConversation(); opener == "" {
		t.Error("expected a non-empty opener")
	}
}

func TestDefaultsApplied(t *testing.T) {
	l, _ := newTestLoop(t, Options{})

	if l.opts.Schedule != "@every 1s" {
		t.Errorf("unexpected default schedule %q", l.opts.Schedule)
	}
	if l.opts.FlushEvery != 5 {
		t.Errorf("unexpected default flush interval %d", l.opts.FlushEvery)
	}
	if l.opts.ThinkChance != 0.05 {
		t.Errorf("unexpected default think chance %v", l.opts.ThinkChance)
	}
	if l.opts.Rand == nil {
		t.Error("expected a default random source")
	}
}
