package config

type Config struct {
	BrainPath   string
	PersonaPath string
	UserID      string
	LLM         LLMConfig
	Buffer      BufferConfig
	Thoughts    ThoughtsConfig
	Backup      BackupConfig
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type BufferConfig struct {
	MaxTurns int
}

type ThoughtsConfig struct {
	Schedule    string
	FlushEvery  int
	ThinkChance float64
}

type BackupConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}
