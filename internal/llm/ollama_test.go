package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaChat(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		var resp ollamaResponse
		resp.Message.Content = "hello back"
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	backend := newOllama(server.URL, "llama3.2:3b")
	reply, err := backend.Chat(context.Background(), "be nice", []Message{
		{Role: "user", Content: "hello"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("unexpected reply %q", reply)
	}

	if got.Model != "llama3.2:3b" || got.Stream {
		t.Errorf("unexpected request shape: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[0].Content != "be nice" {
		t.Errorf("expected system prompt first, got %+v", got.Messages)
	}
}

func TestOllamaChatServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	backend := newOllama(server.URL, "missing")
	_, err := backend.Chat(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestOllamaChatAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Error: "out of memory"})
	}))
	defer server.Close()

	backend := newOllama(server.URL, "llama3.2:3b")
	_, err := backend.Chat(context.Background(), "", []Message{{Role: "user", Content: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("expected api error, got %v", err)
	}
}

func TestOllamaPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	backend := newOllama(server.URL, "llama3.2:3b")
	if err := backend.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}

	server.Close()
	if err := backend.Ping(context.Background()); err == nil {
		t.Error("expected ping failure after server shutdown")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "does-not-exist"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
