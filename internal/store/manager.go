package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrInvalidPath     = errors.New("invalid store path")
	ErrUnknownResource = errors.New("unknown store resource")
)

// Manager hands out stores to the frontend by resource id. Its exported
// methods are bound to the frontend.
type Manager struct {
	dir string

	mu      sync.Mutex
	byPath  map[string]*Store
	handles map[string]*Store
}

func newManager(dir string) *Manager {
	return &Manager{
		dir:     dir,
		byPath:  make(map[string]*Store),
		handles: make(map[string]*Store),
	}
}

// Dir returns the directory stores are resolved against.
func (m *Manager) Dir() string {
	return m.dir
}

// resolve maps a store path relative to the data directory onto disk.
func (m *Manager) resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	sep := string(filepath.Separator)
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" || strings.HasPrefix(clean, sep) ||
		clean == ".." || strings.HasPrefix(clean, ".."+sep) {
		return "", fmt.Errorf("%w: %q escapes the data directory", ErrInvalidPath, path)
	}
	return filepath.Join(m.dir, clean), nil
}

// open returns the cached store for path, loading it on first use. defaults
// only apply on first load.
func (m *Manager) open(path string, defaults map[string]interface{}) (*Store, error) {
	full, err := m.resolve(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.byPath[full]; ok {
		return s, nil
	}
	s, err := open(full, defaults)
	if err != nil {
		return nil, err
	}
	m.byPath[full] = s
	log.Printf("[store] loaded %s (%d keys)", full, s.Len())
	return s, nil
}

func (m *Manager) lookup(rid string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.handles[rid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, rid)
	}
	return s, nil
}

// Load opens the store at path (relative to the data directory) and returns
// a resource id for the other calls.
func (m *Manager) Load(path string, defaults map[string]interface{}) (string, error) {
	s, err := m.open(path, defaults)
	if err != nil {
		return "", err
	}
	rid := uuid.NewString()
	m.mu.Lock()
	m.handles[rid] = s
	m.mu.Unlock()
	return rid, nil
}

// Get returns the value for key, or nil when absent.
func (m *Manager) Get(rid, key string) (interface{}, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return nil, err
	}
	v, _ := s.Get(key)
	return v, nil
}

func (m *Manager) Set(rid, key string, value interface{}) error {
	s, err := m.lookup(rid)
	if err != nil {
		return err
	}
	return s.Set(key, value)
}

func (m *Manager) Has(rid, key string) (bool, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return false, err
	}
	return s.Has(key), nil
}

func (m *Manager) Delete(rid, key string) (bool, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return false, err
	}
	return s.Delete(key), nil
}

func (m *Manager) Keys(rid string) ([]string, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return nil, err
	}
	return s.Keys(), nil
}

func (m *Manager) Values(rid string) ([]interface{}, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return nil, err
	}
	return s.Values(), nil
}

func (m *Manager) Entries(rid string) ([]Entry, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return nil, err
	}
	return s.Entries(), nil
}

func (m *Manager) Length(rid string) (int, error) {
	s, err := m.lookup(rid)
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}

func (m *Manager) Clear(rid string) error {
	s, err := m.lookup(rid)
	if err != nil {
		return err
	}
	s.Clear()
	return nil
}

func (m *Manager) Reset(rid string) error {
	s, err := m.lookup(rid)
	if err != nil {
		return err
	}
	s.Reset()
	return nil
}

func (m *Manager) Reload(rid string) error {
	s, err := m.lookup(rid)
	if err != nil {
		return err
	}
	return s.Reload()
}

func (m *Manager) Save(rid string) error {
	s, err := m.lookup(rid)
	if err != nil {
		return err
	}
	return s.Save()
}

// Close releases rid. The store stays cached for other handles.
func (m *Manager) Close(rid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.handles[rid]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, rid)
	}
	delete(m.handles, rid)
	return nil
}

// saveAll persists every store with unsaved changes and returns the first
// error.
func (m *Manager) saveAll() error {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.byPath))
	for _, s := range m.byPath {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	var first error
	for _, s := range stores {
		if !s.Dirty() {
			continue
		}
		if err := s.Save(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DefaultDir is the per-user data directory for stores.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		log.Printf("[store] warning: no user config dir, using home: %v", err)
		return filepath.Join(home, ".type-for-me")
	}
	return filepath.Join(dir, "type-for-me")
}
