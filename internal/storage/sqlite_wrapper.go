package storage

import (
	"database/sql"

	"github.com/unscroll/unscroll/internal/migration"
	"github.com/unscroll/unscroll/internal/storage/sqlite"
)

// SQLiteStore is the default Provider, backed by a modernc SQLite file.
type SQLiteStore struct {
	kvStore
	store *sqlite.Store
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) *SQLiteStore {
	store := sqlite.NewStore(path)
	return &SQLiteStore{
		kvStore: kvStore{backend: store},
		store:   store,
	}
}

// GetDB returns the underlying connection, or nil before Init/Load.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }

// MigrationStatus reports the schema state for diagnostics.
func (s *SQLiteStore) MigrationStatus() (migration.Status, error) {
	return s.store.MigrationStatus()
}

// Migrate applies pending schema migrations.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) {
	return s.store.Migrate(logFn)
}
