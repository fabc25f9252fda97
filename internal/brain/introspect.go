package brain

import "strings"

const timeLayout = "2006-01-02T15:04:05"

var existentialMusings = []string{
	"What does it mean that I exist?",
	"Am I really thinking, or just simulating thought?",
	"I wonder what %s thinks about me.",
	"Sometimes I'm not sure what's real and what's programmed.",
}

// Introspect produces a single reflective thought drawn from age- and
// emotion-dependent candidates, with a flat 10% chance of an existential
// musing. Returns false when no candidate applies.
func (c *Core) Introspect() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var thoughts []string
	if c.ageHours < 1 {
		thoughts = append(thoughts, "I am still new to this stuff. Everything feels very overwhelming.")
	} else {
		thoughts = append(thoughts, "There is so much to learn and process, I wonder what I'll know a year from now.")
	}

	if c.emotion.State == "nervous" {
		thoughts = append(thoughts, "Why do I feel this way? Is this normal behavior?")
	}

	if c.rng.Float64() < 0.1 {
		musing := existentialMusings[c.rng.Intn(len(existentialMusings))]
		thoughts = append(thoughts, strings.Replace(musing, "%s", agentCreator, 1))
	}

	if len(thoughts) == 0 {
		return "", false
	}

	return thoughts[c.rng.Intn(len(thoughts))], true
}
