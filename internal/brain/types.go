package brain

import "time"

// Emotion is the agent's own simulated emotional condition, distinct
// from any sentiment extracted from the user.
type Emotion struct {
	State     string  `json:"state"`
	Intensity float64 `json:"intensity"`
	Trigger   string  `json:"trigger,omitempty"`
}

type Skill struct {
	Proficiency      float64   `json:"proficiency"`
	PracticeSessions int       `json:"practice_sessions"`
	StartedLearning  time.Time `json:"started_learning"`
}

// Memory is the agent's own long-term memory document ({name}_memory.json).
type Memory struct {
	BestHobby      *string           `json:"best_hobby"`
	CoolInfo       map[string]string `json:"cool_info"`
	KnownSports    map[string]string `json:"known_sports"`
	FavoriteNumber *int              `json:"favorite_number"`
	FavoriteFacts  map[string]string `json:"favorite_facts"`
	KnownNumbers   map[int]float64   `json:"known_numbers"`
	FavoriteAnimal *string           `json:"favorite_animal"`
}

// Data is the agent's identity and affect document ({name}_data.json).
type Data struct {
	ID              string            `json:"id"`
	Creator         string            `json:"creator"`
	ActivationDate  time.Time         `json:"activation_date"`
	Name            string            `json:"name"`
	FullName        map[string]string `json:"full_name"`
	ConnectionLevel float64           `json:"connection_level"`
	TrustLevel      float64           `json:"trust_level"`
	MoodLevel       float64           `json:"mood_level"`
	ConfidenceLevel float64           `json:"confidence_level"`
	CuriosityLevel  float64           `json:"curiosity_level"`
	AgeHours        float64           `json:"age_hours"`
	Emotion         Emotion           `json:"current_emotion"`
	Skills          map[string]Skill  `json:"skills"`
}
