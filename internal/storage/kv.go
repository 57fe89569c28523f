package storage

import (
	"encoding/json"
	"fmt"
)

// rawBackend is the byte-level contract the relational backends implement.
type rawBackend interface {
	Init() error
	Load() error
	Close() error
	GetRaw(key string) ([]byte, bool, error)
	SetRaw(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	GetConfigPath() string
}

// kvStore adapts a rawBackend to Provider, encoding values as JSON and
// notifying subscribers after every successful write.
type kvStore struct {
	backend rawBackend
	subscribers
}

func (s *kvStore) Init() error           { return s.backend.Init() }
func (s *kvStore) Load() error           { return s.backend.Load() }
func (s *kvStore) Close() error          { return s.backend.Close() }
func (s *kvStore) GetConfigPath() string { return s.backend.GetConfigPath() }

func (s *kvStore) Keys() ([]string, error) { return s.backend.Keys() }

func (s *kvStore) Get(key string, dst any) (bool, error) {
	raw, ok, err := s.backend.GetRaw(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *kvStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.backend.SetRaw(key, raw); err != nil {
		return err
	}
	s.publish(key)
	return nil
}

func (s *kvStore) Delete(key string) error {
	if err := s.backend.Delete(key); err != nil {
		return err
	}
	s.publish(key)
	return nil
}
