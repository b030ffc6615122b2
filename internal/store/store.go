// Package store is a persistent key-value store for the web content. Each
// store is a JSON object on disk; values are any JSON value.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Entry is one key-value pair.
type Entry struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Store is an in-memory view of one JSON file. Changes reach disk on Save.
type Store struct {
	path     string
	defaults map[string]interface{}

	mu    sync.RWMutex
	data  map[string]interface{}
	dirty bool
}

// open loads path on top of defaults. A missing file yields the defaults.
func open(path string, defaults map[string]interface{}) (*Store, error) {
	norm, err := normalizeMap(defaults)
	if err != nil {
		return nil, fmt.Errorf("store defaults: %w", err)
	}
	s := &Store{path: path, defaults: norm}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the value for key if it is a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set stores value under key. value must be JSON-encodable.
func (s *Store) Set(key string, value interface{}) error {
	v, err := normalize(value)
	if err != nil {
		return fmt.Errorf("store %s: set %q: %w", filepath.Base(s.path), key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
	s.dirty = true
	return nil
}

func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	s.dirty = true
	return true
}

// Keys returns all keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns all values in key order.
func (s *Store) Values() []interface{} {
	entries := s.Entries()
	values := make([]interface{}, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	return values
}

// Entries returns all pairs in key order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]Entry, 0, len(s.data))
	for k, v := range s.data {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Clear removes every key, defaults included.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]interface{})
	s.dirty = true
}

// Reset restores the defaults the store was opened with.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = copyMap(s.defaults)
	s.dirty = true
}

// Reload discards unsaved changes and re-reads the file.
func (s *Store) Reload() error {
	data := copyMap(s.defaults)

	raw, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return fmt.Errorf("read store %s: %w", s.path, err)
	case len(raw) > 0:
		var onDisk map[string]interface{}
		if err := json.Unmarshal(raw, &onDisk); err != nil {
			return fmt.Errorf("parse store %s: %w", s.path, err)
		}
		for k, v := range onDisk {
			data[k] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.dirty = false
	return nil
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Save writes the store to disk, replacing the file atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}

	s.dirty = false
	return nil
}

// normalize round-trips v through JSON so in-memory values have the same
// shape as values read back from disk.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeMap(m map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// copyMap is shallow; normalized values are only replaced, never mutated.
func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
