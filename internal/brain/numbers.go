package brain

import (
	"regexp"
	"strconv"
	"strings"
)

func splitWords(text string) []string {
	return strings.Fields(text)
}

var numberPattern = regexp.MustCompile(`-?\d+`)

// LearnNumbers extracts every integer from the text and assigns each new
// one a random affinity score in [0,10). Returns the newly learned numbers.
func (c *Core) LearnNumbers(text string) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.learnNumbers(text)
}

func (c *Core) learnNumbers(text string) []int {
	var learned []int
	for _, raw := range numberPattern.FindAllString(text, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if _, known := c.memory.KnownNumbers[n]; known {
			continue
		}
		c.memory.KnownNumbers[n] = c.rng.Float64() * 10
		learned = append(learned, n)
	}

	if len(learned) > 0 {
		c.persistMemory()
	}

	return learned
}

// FavoriteNumber returns the agent's favorite number. Once a favorite has
// been cached it is never recomputed, even when a higher-affinity number
// is learned later. The second return is false while no numbers are known.
func (c *Core) FavoriteNumber() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.memory.FavoriteNumber != nil {
		return *c.memory.FavoriteNumber, true
	}

	if len(c.memory.KnownNumbers) == 0 {
		return 0, false
	}

	var (
		favorite  int
		bestScore = -1.0
	)
	for n, score := range c.memory.KnownNumbers {
		if score > bestScore || (score == bestScore && n < favorite) {
			favorite = n
			bestScore = score
		}
	}

	c.memory.FavoriteNumber = &favorite
	c.persistMemory()

	return favorite, true
}

// AbsorbInfo runs a mood pass over each word of the text, records the
// words as learned trivia, and learns any numbers it contains.
func (c *Core) AbsorbInfo(text string) {
	if text == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.learnNumbers(text)

	for _, word := range splitWords(text) {
		c.setMood(word)
		c.memory.CoolInfo[word] = "learnt: " + c.now().UTC().Format(timeLayout)
	}

	c.persistMemory()
}
