package storage

import (
	"github.com/unscroll/unscroll/internal/migration"
	"github.com/unscroll/unscroll/internal/storage/postgres"
)

// PostgresStore is a Provider backed by a PostgreSQL kv table.
type PostgresStore struct {
	kvStore
	store *postgres.Store
}

func NewPostgresStore(connStr string) *PostgresStore {
	store := postgres.New(connStr)
	return &PostgresStore{
		kvStore: kvStore{backend: store},
		store:   store,
	}
}

// MigrationStatus reports the schema state for diagnostics.
func (s *PostgresStore) MigrationStatus() (migration.Status, error) {
	return s.store.MigrationStatus()
}

// Migrate applies pending schema migrations.
func (s *PostgresStore) Migrate(logFn func(string)) (int, error) {
	return s.store.Migrate(logFn)
}
