// Package memory holds what the agent knows about a user: extracted
// facts, preferences and identity, persisted per (agent x user) as a
// JSON document.
package memory

import "time"

// Mood classifies the sentiment polarity of a fact.
type Mood string

const (
	MoodLoved    Mood = "Loved"
	MoodLiked    Mood = "Liked"
	MoodDisliked Mood = "Disliked"
	MoodHated    Mood = "Hated"
	MoodNeutral  Mood = "neutral"
)

// PreferencePositive marks a plain positive preference; favorite_number
// holds a numeric value instead.
const PreferencePositive = "positive"

type FactRecord struct {
	Mood           Mood      `json:"mood"`
	Sentiment      float64   `json:"sentiment"`
	Confidence     float64   `json:"confidence"`
	Category       string    `json:"category,omitempty"`
	FirstMentioned time.Time `json:"first_mentioned"`
	LastMentioned  time.Time `json:"last_mentioned"`
	MentionCount   int       `json:"mention_count,omitempty"`
}

type Profile struct {
	UserID string `json:"-"`

	ID                string                 `json:"id"`
	Name              string                 `json:"name,omitempty"`
	Nickname          string                 `json:"nickname,omitempty"`
	Facts             map[string]*FactRecord `json:"facts"`
	Preferences       map[string]any         `json:"preferences"`
	ConversationCount int                    `json:"conversation_count"`
	LastInteraction   *time.Time             `json:"last_interaction"`
	TopicsMentioned   []string               `json:"topics_mentioned"`
}

// InsertFact adds a fact only when the label is not already present, so a
// lower-confidence duplicate match never overwrites an existing record.
// Reports whether the fact was inserted.
func (p *Profile) InsertFact(label string, rec FactRecord) bool {
	if _, exists := p.Facts[label]; exists {
		return false
	}
	copied := rec
	p.Facts[label] = &copied
	return true
}

// ReinforceFact records a repeat mention: the mention count goes up and
// confidence rises by 0.1, capped at 1.0. The mood class never changes.
func (p *Profile) ReinforceFact(label string, at time.Time) {
	rec, ok := p.Facts[label]
	if !ok {
		return
	}
	rec.MentionCount++
	rec.Confidence += 0.1
	if rec.Confidence > 1.0 {
		rec.Confidence = 1.0
	}
	rec.LastMentioned = at
}

// FactsByMood groups fact labels into Loved/Liked/Disliked/Hated buckets,
// preserving no particular order within a bucket.
func (p *Profile) FactsByMood() map[Mood][]string {
	buckets := make(map[Mood][]string)
	for label, rec := range p.Facts {
		buckets[rec.Mood] = append(buckets[rec.Mood], label)
	}
	return buckets
}

// PositivePreferences returns the labels of plain positive preferences.
func (p *Profile) PositivePreferences() []string {
	var prefs []string
	for label, v := range p.Preferences {
		if s, ok := v.(string); ok && s == PreferencePositive {
			prefs = append(prefs, label)
		}
	}
	return prefs
}
