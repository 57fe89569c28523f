package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unscroll/unscroll/internal/storage/postgres"
)

// IsPostgres reports whether location is a PostgreSQL connection string.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") ||
		strings.HasPrefix(location, "postgresql://") ||
		strings.Contains(location, "host=")
}

// New picks a backend from the shape of location: a PostgreSQL connection
// string, a .json file, or otherwise a SQLite database file.
func New(location string) (Provider, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("store location cannot be empty")
	}

	if IsPostgres(location) {
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return NewPostgresStore(location), nil
	}

	if strings.EqualFold(filepath.Ext(location), ".json") {
		return NewJSONStore(location), nil
	}
	return NewSQLiteStore(location), nil
}

// NewWithCredentials is New for a connection string that came from a
// trusted secret source (the OS keyring or the environment), so an embedded
// password is accepted.
func NewWithCredentials(connStr string) (Provider, error) {
	connStr = strings.TrimSpace(connStr)
	if !IsPostgres(connStr) {
		return nil, fmt.Errorf("%w: expected a PostgreSQL connection string", postgres.ErrInvalidConnectionString)
	}
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, err
	}
	return NewPostgresStore(connStr), nil
}
