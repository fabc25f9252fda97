package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ONESO-goat/CODEX/internal/storage"
)

type Store struct {
	docs  *storage.DocStore
	agent string
	now   func() time.Time
}

func NewStore(docs *storage.DocStore, agentName string) *Store {
	return &Store{docs: docs, agent: agentName, now: time.Now}
}

func (s *Store) docName(userID string) string {
	return fmt.Sprintf("%s_%s", s.agent, userID)
}

// Load reads the user's profile, creating a fresh one on first contact.
// A malformed profile document is an error the caller treats as fatal.
func (s *Store) Load(userID string) (*Profile, error) {
	p := &Profile{
		ID:          uuid.NewString(),
		Facts:       make(map[string]*FactRecord),
		Preferences: make(map[string]any),
	}

	if err := s.docs.LoadOrCreate(s.docName(userID), p); err != nil {
		return nil, err
	}

	p.UserID = userID
	if p.Facts == nil {
		p.Facts = make(map[string]*FactRecord)
	}
	if p.Preferences == nil {
		p.Preferences = make(map[string]any)
	}

	// JSON decodes numbers as float64; keep the favorite number an int so
	// the map looks the same on first contact and on reload.
	if f, ok := p.Preferences["favorite_number"].(float64); ok {
		p.Preferences["favorite_number"] = int(f)
	}

	return p, nil
}

func (s *Store) Save(p *Profile) error {
	return s.docs.Save(s.docName(p.UserID), p)
}

// SaveSession bumps the conversation count, stamps the last interaction
// and writes the profile out. Called at explicit session end.
func (s *Store) SaveSession(p *Profile) error {
	p.ConversationCount++
	now := s.now().UTC()
	p.LastInteraction = &now
	return s.Save(p)
}

type SummaryStats struct {
	TotalConversations int
	Facts              int
	PreferencesLearned int
	LastSeen           string
}

func Summarize(p *Profile) SummaryStats {
	lastSeen := "Never"
	if p.LastInteraction != nil {
		lastSeen = p.LastInteraction.Format(time.RFC3339)
	}

	return SummaryStats{
		TotalConversations: p.ConversationCount,
		Facts:              len(p.Facts),
		PreferencesLearned: len(p.Preferences),
		LastSeen:           lastSeen,
	}
}
