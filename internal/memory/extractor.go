package memory

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ONESO-goat/CODEX/internal/logger"
)

// MoodSetter receives utterance fragments that express feelings toward
// the agent itself. The brain core satisfies it.
type MoodSetter interface {
	SetMood(text string)
}

// factGroup is one ordered group of patterns sharing a mood class. The
// first pattern to match wins within a group; groups are independent and
// all scan the original lowercased utterance.
type factGroup struct {
	mood       Mood
	sentiment  float64
	confidence float64
	persistNow bool
	patterns   []*regexp.Regexp
}

var factGroups = []factGroup{
	{
		mood:       MoodLiked,
		sentiment:  0.9,
		confidence: 0.7,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`i enjoy (\w+)`),
			regexp.MustCompile(`i like (\w+)`),
			regexp.MustCompile(`i love (\w+)`),
			regexp.MustCompile(`i (?:was|am) playing (\w+)`),
			regexp.MustCompile(`i play (\w+)`),
			regexp.MustCompile(`i (?:was|am) (?:doing|watching) (\w+)`),
			regexp.MustCompile(`i'm interested in (\w+)`),
			regexp.MustCompile(`i'm into (\w+)`),
			regexp.MustCompile(`i have (?:a|an) (\w+)`),
			regexp.MustCompile(`i own (?:a|an) (\w+)`),
		},
	},
	{
		mood:       MoodDisliked,
		sentiment:  0.9,
		confidence: 0.7,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`i don't enjoy doing (\w+)`),
			regexp.MustCompile(`i don't like (\w+)`),
			regexp.MustCompile(`i'm not interested in (\w+)`),
		},
	},
	{
		mood:       MoodHated,
		sentiment:  0.9,
		confidence: 0.7,
		persistNow: true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`i hate doing (\w+)`),
			regexp.MustCompile(`i can't stand (\w+)`),
		},
	},
	{
		mood:       MoodLoved,
		sentiment:  0.9,
		confidence: 0.7,
		persistNow: true,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`i love (\w+)`),
			regexp.MustCompile(`i absolutely (?:love|like) (\w+)`),
		},
	},
}

var nicknamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`people (?:sometimes |also )?call me (\w+)`),
	regexp.MustCompile(`i(?:'d)? rather be called (\w+)`),
}

var identityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\s)i am (\w+)`),
	regexp.MustCompile(`(?:^|\s)my name (?:is|was) (\w+)`),
	regexp.MustCompile(`(?:^|\s)(?:you can )?call me (\w+)`),
	regexp.MustCompile(`(?:^|\s)i'm (\w+)`),
}

// nameStopwords rejects captures that are grammar, not names.
var nameStopwords = map[string]bool{
	"my": true, "your": true, "the": true, "a": true, "and": true,
}

var feelingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i love you`),
	regexp.MustCompile(`(?:you are|you're) my everything`),
	regexp.MustCompile(`i miss you`),
}

var preferPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i prefer (\w+)`),
	regexp.MustCompile(`i have a preference for (\w+)`),
	regexp.MustCompile(`i preferably want (\w+)`),
	regexp.MustCompile(`preferably (\w+)`),
	regexp.MustCompile(`i rather (?:have|get) (\w+)`),
}

var activityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i (?:was|am|been) playing (\w+(?:\s+\w+)*)`),
	regexp.MustCompile(`i (?:like|love|enjoy) to play (\w+(?:\s+\w+)*)`),
	regexp.MustCompile(`i play (\w+(?:\s+\w+)*)`),
	regexp.MustCompile(`i watch (\w+(?:\s+\w+)*)`),
	regexp.MustCompile(`i listen to (\w+(?:\s+\w+)*)`),
}

var favoriteNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`my favorite number is (\d+)`),
	regexp.MustCompile(`my favorite is (\d+)`),
}

var gamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`i (?:love|like|enjoy|play) (?:games like )?(\w+)`),
	regexp.MustCompile(`(\w+) or (\w+)`),
}

// factStopwords keeps pronoun captures (like the "you" in "I love you")
// out of the fact map; those phrases belong to the feelings group.
var factStopwords = map[string]bool{
	"i": true, "you": true, "my": true, "your": true, "the": true,
}

// Extractor runs the pattern groups over user utterances and folds the
// matches into the profile. It has no error conditions: a non-match is
// simply a no-op.
type Extractor struct {
	store *Store
	moods MoodSetter
	now   func() time.Time
}

func NewExtractor(store *Store, moods MoodSetter) *Extractor {
	return &Extractor{store: store, moods: moods, now: time.Now}
}

// Extract mutates the profile in place from one utterance. Each pattern
// group is independent and scans the original lowercased text; later
// groups never see facts the earlier ones inserted in this call.
func (e *Extractor) Extract(utterance string, p *Profile) {
	lower := strings.ToLower(utterance)
	now := e.now().UTC()

	for _, group := range factGroups {
		e.applyFactGroup(group, lower, p, now)
	}

	e.extractNickname(lower, p)
	e.extractName(lower, p)
	e.forwardFeelings(lower)
	e.extractPreferences(lower, p)
	e.extractActivities(lower, p, now)
	e.extractFavoriteNumber(lower, p, now)
	e.extractGames(lower, p, now)

	// Final persist happens whether or not any game matched.
	e.save(p)
}

func (e *Extractor) applyFactGroup(group factGroup, lower string, p *Profile, now time.Time) {
	for _, re := range group.patterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		if factStopwords[m[1]] {
			continue
		}

		inserted := p.InsertFact(m[1], FactRecord{
			Mood:           group.mood,
			Sentiment:      group.sentiment,
			Confidence:     group.confidence,
			FirstMentioned: now,
			LastMentioned:  now,
		})
		if inserted && group.persistNow {
			e.save(p)
		}

		return // first match wins within a group
	}
}

func (e *Extractor) extractNickname(lower string, p *Profile) {
	if p.Nickname != "" {
		return
	}

	for _, re := range nicknamePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			p.Nickname = m[1]
			return
		}
	}
}

func (e *Extractor) extractName(lower string, p *Profile) {
	for _, re := range identityPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		candidate := capitalize(m[1])
		if nameStopwords[strings.ToLower(candidate)] {
			continue
		}

		// Last matching pattern wins, so keep scanning.
		p.Name = candidate
	}

	if p.Name != "" {
		logger.Debug("user recognized", "name", p.Name, "recap", RecognizeUser(p, p.Name))
	}
}

func (e *Extractor) forwardFeelings(lower string) {
	for _, re := range feelingPatterns {
		if m := re.FindString(lower); m != "" {
			e.moods.SetMood(m)
		}
	}
}

func (e *Extractor) extractPreferences(lower string, p *Profile) {
	for _, re := range preferPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			p.Preferences[m[1]] = PreferencePositive
			e.save(p)
		}
	}
}

func (e *Extractor) extractActivities(lower string, p *Profile, now time.Time) {
	for _, re := range activityPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			label := strings.TrimSpace(m[1])
			if label == "" {
				continue
			}

			inserted := p.InsertFact(label, FactRecord{
				Mood:           MoodLiked,
				Sentiment:      0.7,
				Confidence:     0.6,
				Category:       "activity",
				FirstMentioned: now,
				LastMentioned:  now,
				MentionCount:   1,
			})
			if !inserted {
				p.ReinforceFact(label, now)
			}
			e.save(p)
		}
	}
}

func (e *Extractor) extractFavoriteNumber(lower string, p *Profile, now time.Time) {
	for _, re := range favoriteNumberPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		p.Preferences["favorite_number"] = n
		p.InsertFact("favorite_number_"+m[1], FactRecord{
			Mood:           MoodLoved,
			Sentiment:      1.0,
			Confidence:     0.9,
			FirstMentioned: now,
			LastMentioned:  now,
		})
	}
}

func (e *Extractor) extractGames(lower string, p *Profile, now time.Time) {
	for _, re := range gamePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			game := m[1]
			if factStopwords[game] {
				continue
			}

			p.InsertFact(game, FactRecord{
				Mood:           MoodLiked,
				Confidence:     0.7,
				Category:       "game",
				FirstMentioned: now,
				LastMentioned:  now,
			})
		}
	}
}

func (e *Extractor) save(p *Profile) {
	if err := e.store.Save(p); err != nil {
		logger.Error("failed to persist profile", "user", p.UserID, "error", err)
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
