package storage

import "errors"

// ErrNotLoaded is returned when a provider is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// ChangeFunc is called with the key whose value changed.
type ChangeFunc func(key string)

// Provider is a persistent key-value store holding JSON values.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get decodes the value under key into dst. It reports false when the
	// key is absent; a present but undecodable value is an error.
	Get(key string, dst any) (bool, error)
	Set(key string, value any) error
	Delete(key string) error
	Keys() ([]string, error)

	// Subscribe registers fn for change notifications and returns a
	// function that removes it.
	Subscribe(fn ChangeFunc) (unsubscribe func())

	// Utils
	GetConfigPath() string
}
