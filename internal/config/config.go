package config

import (
	"os"
	"strconv"
)

func Load() (*Config, error) {
	brainPath := os.Getenv("CODEX_BRAIN")
	if brainPath == "" {
		brainPath = "codex/brain"
	}

	personaPath := os.Getenv("CODEX_PERSONA")
	if personaPath == "" {
		personaPath = "persona"
	}

	return &Config{
		BrainPath:   brainPath,
		PersonaPath: personaPath,
		LLM:         loadLLMConfig(),
		Buffer:      loadBufferConfig(),
		Thoughts:    loadThoughtsConfig(),
		Backup:      loadBackupConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	provider := os.Getenv("CODEX_PROVIDER")
	if provider == "" {
		provider = "ollama"
	}

	model := os.Getenv("CODEX_MODEL")
	if model == "" && provider == "ollama" {
		model = "llama3.2:3b"
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   os.Getenv("CODEX_API_KEY"),
		Model:    model,
		BaseURL:  os.Getenv("CODEX_BASE_URL"),
	}
}

func loadBufferConfig() BufferConfig {
	maxTurns := 100
	if v := os.Getenv("CODEX_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTurns = n
		}
	}

	return BufferConfig{MaxTurns: maxTurns}
}

func loadThoughtsConfig() ThoughtsConfig {
	schedule := os.Getenv("CODEX_THOUGHT_SCHEDULE")
	if schedule == "" {
		schedule = "@every 1s"
	}

	flushEvery := 5
	if v := os.Getenv("CODEX_THOUGHT_FLUSH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			flushEvery = n
		}
	}

	chance := 0.05
	if v := os.Getenv("CODEX_THOUGHT_CHANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			chance = f
		}
	}

	return ThoughtsConfig{
		Schedule:    schedule,
		FlushEvery:  flushEvery,
		ThinkChance: chance,
	}
}

func loadBackupConfig() BackupConfig {
	bucket := os.Getenv("CODEX_BACKUP_BUCKET")
	if bucket == "" {
		bucket = "codex-brain"
	}

	useSSL, _ := strconv.ParseBool(os.Getenv("CODEX_BACKUP_SSL"))

	return BackupConfig{
		Endpoint:  os.Getenv("CODEX_BACKUP_ENDPOINT"),
		AccessKey: os.Getenv("CODEX_BACKUP_ACCESS_KEY"),
		SecretKey: os.Getenv("CODEX_BACKUP_SECRET_KEY"),
		UseSSL:    useSSL,
		Bucket:    bucket,
	}
}
