package brain

// LearnSkill registers a skill the agent has started learning.
func (c *Core) LearnSkill(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.learnSkill(name)
}

func (c *Core) learnSkill(name string) {
	if _, ok := c.skills[name]; ok {
		return
	}
	c.skills[name] = Skill{StartedLearning: c.now().UTC()}
	c.persistData()
}

// PracticeSkill records a practice session. Successful sessions improve
// proficiency along a diminishing curve, capped at 1.0.
func (c *Core) PracticeSkill(name string, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.learnSkill(name)

	skill := c.skills[name]
	skill.PracticeSessions++

	if success {
		improvement := 0.1 / (1 + skill.Proficiency)
		skill.Proficiency += improvement
	}
	if skill.Proficiency > 1.0 {
		skill.Proficiency = 1.0
	}

	c.skills[name] = skill
	c.persistData()
}

// Skills returns a copy of the agent's skill map.
func (c *Core) Skills() map[string]Skill {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Skill, len(c.skills))
	for name, skill := range c.skills {
		out[name] = skill
	}
	return out
}
