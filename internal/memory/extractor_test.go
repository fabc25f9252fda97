package memory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ONESO-goat/CODEX/internal/storage"
)

type fakeMoodSetter struct {
	calls []string
}

func (f *fakeMoodSetter) SetMood(text string) {
	f.calls = append(f.calls, text)
}

func newTestExtractor(t *testing.T) (*Extractor, *Store, *fakeMoodSetter) {
	t.Helper()

	docs, err := storage.NewDocStore(filepath.Join(t.TempDir(), "brain"))
	if err != nil {
		t.Fatalf("doc store: %v", err)
	}

	store := NewStore(docs, "Codex")
	moods := &fakeMoodSetter{}
	return NewExtractor(store, moods), store, moods
}

func newTestProfile(userID string) *Profile {
	return &Profile{
		UserID:      userID,
		Facts:       make(map[string]*FactRecord),
		Preferences: make(map[string]any),
	}
}

func TestExtractLikedFactIdempotent(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I enjoy gaming", p)
	e.Extract("I enjoy gaming", p)

	rec, ok := p.Facts["gaming"]
	if !ok {
		t.Fatal("expected fact 'gaming'")
	}
	if rec.Mood != MoodLiked {
		t.Errorf("expected mood Liked, got %s", rec.Mood)
	}
	if rec.Sentiment != 0.9 || rec.Confidence != 0.7 {
		t.Errorf("unexpected scores: %+v", rec)
	}
}

func TestExtractFullScenario(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("julius")

	e.Extract("My name is Julius, I like to play overwatch, and my favorite number is 666", p)

	if p.Name != "Julius" {
		t.Errorf("expected name Julius, got %q", p.Name)
	}

	overwatch, ok := p.Facts["overwatch"]
	if !ok {
		t.Fatal("expected fact 'overwatch'")
	}
	if overwatch.Mood != MoodLiked || overwatch.Category != "activity" {
		t.Errorf("unexpected overwatch record: %+v", overwatch)
	}

	if n, ok := p.Preferences["favorite_number"].(int); !ok || n != 666 {
		t.Errorf("expected favorite_number 666, got %v", p.Preferences["favorite_number"])
	}

	fav, ok := p.Facts["favorite_number_666"]
	if !ok {
		t.Fatal("expected synthetic fact 'favorite_number_666'")
	}
	if fav.Mood != MoodLoved {
		t.Errorf("expected Loved, got %s", fav.Mood)
	}
}

func TestExtractRepeatedActivityReinforces(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I play chess", p)

	first := *p.Facts["chess"]

	e.Extract("I play chess", p)

	rec := p.Facts["chess"]
	if rec.MentionCount != 2 {
		t.Errorf("expected mention_count 2, got %d", rec.MentionCount)
	}
	want := first.Confidence + 0.1
	if rec.Confidence != want {
		t.Errorf("expected confidence %.2f, got %.2f", want, rec.Confidence)
	}
	if rec.Mood != first.Mood {
		t.Errorf("mood changed on repeat mention: %s -> %s", first.Mood, rec.Mood)
	}
}

func TestExtractConfidenceCappedAtOne(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	for range 10 {
		e.Extract("I play chess", p)
	}

	if c := p.Facts["chess"].Confidence; c > 1.0 {
		t.Errorf("confidence exceeded cap: %.2f", c)
	}
}

func TestExtractNameStopwordsRejected(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I am the greatest", p)

	if p.Name != "" {
		t.Errorf("stopword accepted as name: %q", p.Name)
	}
}

func TestExtractNicknameSetOnce(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("People call me Ace", p)
	e.Extract("People call me Duke", p)

	if p.Nickname != "ace" {
		t.Errorf("expected nickname 'ace', got %q", p.Nickname)
	}
}

func TestExtractDislikedAndHated(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I don't like mondays", p)
	e.Extract("I can't stand traffic", p)

	if rec := p.Facts["mondays"]; rec == nil || rec.Mood != MoodDisliked {
		t.Errorf("unexpected mondays record: %+v", rec)
	}
	if rec := p.Facts["traffic"]; rec == nil || rec.Mood != MoodHated {
		t.Errorf("unexpected traffic record: %+v", rec)
	}
}

func TestExtractFeelingsForwardedToMood(t *testing.T) {
	e, _, moods := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I love you", p)

	found := false
	for _, call := range moods.calls {
		if call == "i love you" {
			found = true
		}
	}
	if !found {
		t.Errorf("feelings phrase not forwarded, calls: %v", moods.calls)
	}

	// Feelings toward the agent do not become user facts.
	if _, ok := p.Facts["you"]; ok {
		t.Error("feelings phrase leaked into facts as 'you'")
	}
}

func TestExtractPreferences(t *testing.T) {
	e, _, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("I prefer tea", p)

	if v, ok := p.Preferences["tea"].(string); !ok || v != PreferencePositive {
		t.Errorf("expected positive preference for tea, got %v", p.Preferences["tea"])
	}
}

func TestExtractPersistsProfile(t *testing.T) {
	e, store, _ := newTestExtractor(t)
	p := newTestProfile("alex")

	e.Extract("hello there", p)

	// The final persist is unconditional, so the document must exist
	// even when nothing matched.
	loaded, err := store.Load("alex")
	if err != nil {
		t.Fatalf("load after extract: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected persisted profile")
	}
}

func TestStoreSaveSession(t *testing.T) {
	_, store, _ := newTestExtractor(t)

	p, err := store.Load("sam")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	before := p.ConversationCount
	if err := store.SaveSession(p); err != nil {
		t.Fatalf("save session: %v", err)
	}

	reloaded, err := store.Load("sam")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ConversationCount != before+1 {
		t.Errorf("expected conversation_count %d, got %d", before+1, reloaded.ConversationCount)
	}
	if reloaded.LastInteraction == nil {
		t.Error("expected last_interaction to be set")
	}
}

func TestStoreLoadKeepsFavoriteNumberAnInt(t *testing.T) {
	e, store, _ := newTestExtractor(t)

	p, err := store.Load("sam")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	e.Extract("my favorite number is 666", p)
	if n, ok := p.Preferences["favorite_number"].(int); !ok || n != 666 {
		t.Fatalf("expected int 666 before reload, got %v", p.Preferences["favorite_number"])
	}

	reloaded, err := store.Load("sam")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n, ok := reloaded.Preferences["favorite_number"].(int); !ok || n != 666 {
		t.Errorf("expected int 666 after reload, got %T %v",
			reloaded.Preferences["favorite_number"], reloaded.Preferences["favorite_number"])
	}
}

func TestReinforceFactNeverChangesMood(t *testing.T) {
	p := newTestProfile("alex")
	now := time.Now()

	p.InsertFact("running", FactRecord{Mood: MoodHated, Confidence: 0.7, FirstMentioned: now, LastMentioned: now})

	inserted := p.InsertFact("running", FactRecord{Mood: MoodLoved, Confidence: 0.9})
	if inserted {
		t.Error("duplicate insert succeeded")
	}
	if p.Facts["running"].Mood != MoodHated {
		t.Errorf("mood overwritten: %s", p.Facts["running"].Mood)
	}
}
