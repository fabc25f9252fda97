package brain

import "strings"

// ResetPhrase forces the emotion back to its neutral baseline. The
// conversation reset path sends it verbatim.
const ResetPhrase = "average day"

// SetMood scans the text for keyword triggers and updates emotion, mood
// level and connection level. Both the love and hate branches may fire on
// the same input. The state is clamped and persisted after every call.
func (c *Core) SetMood(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setMood(text)
}

func (c *Core) setMood(text string) {
	lower := strings.ToLower(text)
	triggered := false

	if strings.Contains(lower, "love") {
		triggered = true
		if c.connectionLevel < 4 {
			c.emotion = Emotion{State: "nervous", Intensity: 0.8, Trigger: "awkward"}
			c.moodLevel += 0.5
			c.connectionLevel += 0.8
		} else {
			c.emotion = Emotion{State: "affectionate", Intensity: 0.6, Trigger: "love"}
			c.moodLevel += 0.8
			c.connectionLevel += 0.3
		}
	}

	if strings.Contains(lower, "hate") {
		c.emotion = Emotion{State: "upset", Intensity: 0.75, Trigger: "hate"}
		c.moodLevel += 0.6
		c.connectionLevel += 0.4
	} else if strings.Contains(lower, "please") {
		c.emotion = Emotion{State: "focused", Intensity: 0.2, Trigger: "please"}
		c.moodLevel += 0.7
	} else if strings.Contains(lower, "death") || strings.Contains(lower, "dying") {
		c.fearCheck()
		triggered = true
	}

	if text == ResetPhrase {
		c.emotion = Emotion{State: ResetPhrase, Intensity: 0.3}
		triggered = true
	}

	if !triggered {
		// Slowly return to baseline
		c.emotion.Intensity *= 0.9
		if c.emotion.Intensity < 0.1 {
			c.emotion = Emotion{State: "neutral", Intensity: 0.3}
		}
	}

	c.moodLevel = clamp(c.moodLevel, 0, 10)
	c.connectionLevel = clamp(c.connectionLevel, 0, 10)
	c.persistData()
}

// FearCheck picks a fear emotion whose intensity and mood contribution
// grow with the agent's age.
func (c *Core) FearCheck() Emotion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fearCheck()
}

func (c *Core) fearCheck() Emotion {
	states := []string{"scared", "fearful"}
	triggers := []string{"dead", "dying"}

	c.emotion = Emotion{
		State:   states[c.rng.Intn(len(states))],
		Trigger: triggers[c.rng.Intn(len(triggers))],
	}

	switch {
	case c.ageHours < 1:
		c.emotion.Intensity = 1
		c.moodLevel += 0.5
	case c.ageHours < 5:
		c.emotion.Intensity = 3
		c.moodLevel += 2
	case c.ageHours < 13:
		c.emotion.Intensity = 8
		c.moodLevel += 5
	}

	c.moodLevel = clamp(c.moodLevel, 0, 10)
	c.connectionLevel = clamp(c.connectionLevel, 0, 10)
	c.persistData()
	c.persistMemory()

	return c.emotion
}

// EmotionalAwareness shifts the baseline emotion with the agent's age in
// years since activation.
func (c *Core) EmotionalAwareness() {
	c.mu.Lock()
	defer c.mu.Unlock()

	years := c.now().UTC().Sub(c.activation).Hours() / (24 * 365)

	switch {
	case years < 1:
		c.emotion = Emotion{State: "curious", Intensity: 0.8}
	case years < 5:
		c.emotion = Emotion{State: "fascinated", Intensity: 0.5}
	case years >= 10:
		c.emotion = Emotion{State: "ambitious", Intensity: 1.0}
	}

	c.persistData()
}
