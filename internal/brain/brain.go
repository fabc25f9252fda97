// Package brain holds the agent's own state: emotion, affect levels, age,
// learned numbers and skills. The Core is the single owner of that state;
// every other component mutates it through methods, never fields.
package brain

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

const (
	agentName    = "Codex"
	agentCreator = "Julius Cylien"
)

// FullNameMeaning spells out the acronym behind the agent's name.
var FullNameMeaning = map[string]string{
	"Consciousness": "Self modeling agent with introspective capability",
	"Obligation":    "Internally generated goal maintenance",
	"Dynamic":       "Non-stationary policy evolution",
	"Equalizer":     "Value generalization across agent classes",
	"Xospec":        "Modular cognitive scaffolding layer",
}

type Core struct {
	mu    sync.Mutex
	store *storage.DocStore
	rng   *rand.Rand
	now   func() time.Time

	id         string
	activation time.Time

	emotion         Emotion
	moodLevel       float64
	connectionLevel float64
	trustLevel      float64
	confidenceLevel float64
	curiosityLevel  float64
	ageHours        float64

	skills map[string]Skill
	memory Memory
}

type Option func(*Core)

// WithRand injects a seedable random source so affect and introspection
// are deterministic under test.
func WithRand(r *rand.Rand) Option {
	return func(c *Core) { c.rng = r }
}

// WithClock injects the time source used for age and timestamps.
func WithClock(fn func() time.Time) Option {
	return func(c *Core) { c.now = fn }
}

// Boot loads the agent's memory and data documents, creating both with
// defaults on first activation.
func Boot(store *storage.DocStore, opts ...Option) (*Core, error) {
	c := &Core{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.id = uuid.NewString()
	c.activation = c.now().UTC()
	c.confidenceLevel = 0.5
	c.curiosityLevel = 0.8
	c.emotion = Emotion{State: "average day", Intensity: 0.32}
	c.skills = make(map[string]Skill)
	c.memory = defaultMemory()

	mem := defaultMemory()
	if err := store.LoadOrCreate(c.memoryDoc(), &mem); err != nil {
		return nil, err
	}
	c.memory = mem
	if c.memory.CoolInfo == nil {
		c.memory.CoolInfo = make(map[string]string)
	}
	if c.memory.KnownNumbers == nil {
		c.memory.KnownNumbers = make(map[int]float64)
	}

	if store.Exists(c.dataDoc()) {
		var data Data
		if err := store.Load(c.dataDoc(), &data); err != nil {
			return nil, err
		}
		c.restore(data)
	} else if err := store.Save(c.dataDoc(), c.data()); err != nil {
		return nil, err
	}

	return c, nil
}

func defaultMemory() Memory {
	return Memory{
		CoolInfo:      make(map[string]string),
		KnownSports:   make(map[string]string),
		FavoriteFacts: make(map[string]string),
		KnownNumbers:  make(map[int]float64),
	}
}

func (c *Core) restore(data Data) {
	if data.ID != "" {
		c.id = data.ID
	}
	if !data.ActivationDate.IsZero() {
		c.activation = data.ActivationDate
	}
	c.connectionLevel = data.ConnectionLevel
	c.trustLevel = data.TrustLevel
	c.moodLevel = data.MoodLevel
	c.confidenceLevel = data.ConfidenceLevel
	c.curiosityLevel = data.CuriosityLevel
	c.ageHours = data.AgeHours
	if data.Emotion.State != "" {
		c.emotion = data.Emotion
	}
	if data.Skills != nil {
		c.skills = data.Skills
	}
}

func (c *Core) data() Data {
	return Data{
		ID:              c.id,
		Creator:         agentCreator,
		ActivationDate:  c.activation,
		Name:            agentName,
		FullName:        FullNameMeaning,
		ConnectionLevel: c.connectionLevel,
		TrustLevel:      c.trustLevel,
		MoodLevel:       c.moodLevel,
		ConfidenceLevel: c.confidenceLevel,
		CuriosityLevel:  c.curiosityLevel,
		AgeHours:        c.ageHours,
		Emotion:         c.emotion,
		Skills:          c.skills,
	}
}

func (c *Core) memoryDoc() string {
	return agentName + "_memory"
}

func (c *Core) dataDoc() string {
	return agentName + "_data"
}

// persistData and persistMemory log failures instead of returning them:
// the in-memory state stays authoritative for the rest of the session.
func (c *Core) persistData() {
	if err := c.store.Save(c.dataDoc(), c.data()); err != nil {
		logger.Error("failed to persist agent data", "error", err)
	}
}

func (c *Core) persistMemory() {
	if err := c.store.Save(c.memoryDoc(), c.memory); err != nil {
		logger.Error("failed to persist agent memory", "error", err)
	}
}

// UpdateAge refreshes the agent's age in hours since first activation.
func (c *Core) UpdateAge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ageHours = c.now().UTC().Sub(c.activation).Hours()
}

func (c *Core) AgeHours() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ageHours
}

func (c *Core) Name() string {
	return agentName
}

func (c *Core) Creator() string {
	return agentCreator
}

func (c *Core) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Core) Activation() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activation
}

// Feeling returns the current emotion state tag.
func (c *Core) Feeling() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emotion.State
}

func (c *Core) CurrentEmotion() Emotion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emotion
}

func (c *Core) MoodLevel() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moodLevel
}

func (c *Core) ConnectionLevel() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectionLevel
}

// AdjustConfidence nudges confidence after an interaction outcome.
func (c *Core) AdjustConfidence(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if success {
		c.confidenceLevel += 0.05
	} else {
		c.confidenceLevel -= 0.03
	}
	c.confidenceLevel = clamp(c.confidenceLevel, 0, 1)
	c.persistData()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
