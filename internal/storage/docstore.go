// Package storage persists agent and user state as pretty-printed JSON
// documents under a single root directory. Every save is a full rewrite.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type DocStore struct {
	root string
}

func NewDocStore(root string) (*DocStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &DocStore{root: root}, nil
}

func (s *DocStore) Root() string {
	return s.root
}

func (s *DocStore) Path(name string) string {
	return filepath.Join(s.root, name+".json")
}

func (s *DocStore) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Load reads a document into v. A malformed document is an error the
// caller must treat as fatal; there is no schema migration.
func (s *DocStore) Load(name string, v any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed document %s: %w", name, err)
	}

	return nil
}

// LoadOrCreate reads a document into v, writing v out as the initial
// document when none exists yet.
func (s *DocStore) LoadOrCreate(name string, v any) error {
	if s.Exists(name) {
		return s.Load(name, v)
	}
	return s.Save(name, v)
}

func (s *DocStore) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

// Documents lists the JSON document names under the root.
func (s *DocStore) Documents() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}

	return names, nil
}
