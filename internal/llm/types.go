package llm

import "context"

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type Message struct {
	Role    string
	Content string
}

// LLM is a chat-completion backend. Ping reports whether the backend is
// reachable; engines treat an unreachable backend as fatal at construction.
type LLM interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
	Ping(ctx context.Context) error
}
