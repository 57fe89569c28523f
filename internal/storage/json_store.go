package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fileFormat is the on-disk layout of a JSON store.
type fileFormat struct {
	Version int                        `json:"version"`
	Values  map[string]json.RawMessage `json:"values"`
}

// JSONStore keeps every key in one JSON document. Writes go through a
// temporary file and rename so readers never observe a partial document.
//
// Running several processes against the same file is supported only in the
// sense that a Watcher picks up the other side's writes; concurrent writers
// still race and the last write wins.
type JSONStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]json.RawMessage
	// last holds the bytes this process most recently wrote, so the watcher
	// can ignore its own writes.
	last []byte

	subscribers
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		values, _, err := s.read()
		if err != nil {
			return err
		}
		s.values = values
		return nil
	}

	s.values = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, data, err := s.read()
	if err != nil {
		return err
	}
	s.values = values
	s.last = data
	return nil
}

func (s *JSONStore) read() (map[string]json.RawMessage, []byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("storage not initialized, run 'unscroll init' first")
		}
		return nil, nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var doc fileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Values == nil {
		doc.Values = make(map[string]json.RawMessage)
	}
	return doc.Values, data, nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save must be called with s.mu held.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(fileFormat{Version: 1, Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	s.last = data
	return nil
}

func (s *JSONStore) Get(key string, dst any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.values == nil {
		return false, ErrNotLoaded
	}
	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *JSONStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	if s.values == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	s.values[key] = raw
	err = s.save()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(key)
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	if s.values == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if _, ok := s.values[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.values, key)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(key)
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.values == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Reload re-reads the file and notifies subscribers of every key whose
// value differs from the in-memory copy. Files identical to this process's
// last write are ignored.
func (s *JSONStore) Reload() ([]string, error) {
	s.mu.Lock()
	values, data, err := s.read()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if bytes.Equal(data, s.last) {
		s.mu.Unlock()
		return nil, nil
	}

	var changed []string
	for k, v := range values {
		if old, ok := s.values[k]; !ok || !bytes.Equal(old, v) {
			changed = append(changed, k)
		}
	}
	for k := range s.values {
		if _, ok := values[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)

	s.values = values
	s.last = data
	s.mu.Unlock()

	for _, k := range changed {
		s.publish(k)
	}
	return changed, nil
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
