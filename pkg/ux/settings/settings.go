// Package settings provides the persistent device settings collaborator:
// a small TOML document on flash, read fresh by callers that need live
// values (the idle watchdog re-reads its timeout every cycle).
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store is a key/value settings store backed by a TOML file. The zero
// value is not usable; create one with Open.
type Store struct {
	path string

	mu   sync.Mutex
	vals map[string]any
}

// Open loads the settings file at path. A missing file is not an error;
// it yields an empty store that Save will create.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		vals: make(map[string]any),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s.vals); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

// Get returns the integer value for key, or def when the key is absent or
// holds a non-integer.
func (s *Store) Get(key string, def int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vals[key].(int64); ok {
		return v
	}
	return def
}

// GetString returns the string value for key, or def.
func (s *Store) GetString(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vals[key].(string); ok {
		return v
	}
	return def
}

// GetBool returns the boolean value for key, or def.
func (s *Store) GetBool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.vals[key].(bool); ok {
		return v
	}
	return def
}

// Set stores value for key in memory. Call Save to persist.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
}

// Save writes the current values back to the settings file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.vals); err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}
