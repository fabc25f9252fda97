package memory

import (
	"fmt"
	"strings"
)

// RecognizeUser builds a human-readable recap of everything known about
// the named user, for injection into the prompt. Returns "" when the name
// doesn't match the profile.
func RecognizeUser(p *Profile, name string) string {
	if name == "" || !strings.EqualFold(name, p.Name) {
		return ""
	}

	var facts []string
	for label := range p.Facts {
		facts = append(facts, "- "+label)
	}

	var prefs []string
	for label := range p.Preferences {
		prefs = append(prefs, "- "+label)
	}

	var topics []string
	for _, topic := range p.TopicsMentioned {
		topics = append(topics, "- "+topic)
	}

	return fmt.Sprintf(`You are talking to %s.
Here is your knowledge of this person:

NAME:
%s

FACTS:
%s

PREFERENCES:
%s

TOPICS YOU HAVE DISCUSSED:
%s
`, p.Name, p.Name, strings.Join(facts, "\n"), strings.Join(prefs, "\n"), strings.Join(topics, "\n"))
}
