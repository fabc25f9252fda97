package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestStore(t *testing.T) *DocStore {
	t.Helper()
	s, err := NewDocStore(filepath.Join(t.TempDir(), "brain"))
	if err != nil {
		t.Fatalf("doc store: %v", err)
	}
	return s
}

func TestDocStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("Codex_data", testDoc{Name: "Codex", Count: 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var doc testDoc
	if err := s.Load("Codex_data", &doc); err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Name != "Codex" || doc.Count != 3 {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestDocStorePrettyPrints(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("doc", testDoc{Name: "Codex"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(s.Path("doc"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"name\"") {
		t.Errorf("expected indented JSON, got %q", raw)
	}
}

func TestDocStoreMalformedDocument(t *testing.T) {
	s := newTestStore(t)

	if err := os.WriteFile(s.Path("broken"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var doc testDoc
	err := s.Load("broken", &doc)
	if err == nil || !strings.Contains(err.Error(), "malformed document") {
		t.Errorf("expected malformed document error, got %v", err)
	}
}

func TestDocStoreLoadOrCreate(t *testing.T) {
	s := newTestStore(t)

	doc := testDoc{Name: "initial"}
	if err := s.LoadOrCreate("doc", &doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !s.Exists("doc") {
		t.Fatal("expected document created on first load")
	}

	second := testDoc{Name: "other"}
	if err := s.LoadOrCreate("doc", &second); err != nil {
		t.Fatalf("load: %v", err)
	}
	if second.Name != "initial" {
		t.Errorf("expected existing document to win, got %+v", second)
	}
}

func TestDocStoreDocuments(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("a", testDoc{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("b", testDoc{}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Root(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := s.Documents()
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 documents, got %v", names)
	}
}
