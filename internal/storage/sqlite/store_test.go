package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func setupMinimalTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	// Open the database without running migrations.
	db, err := sql.Open("sqlite", store.path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store.db = db
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTableExists(t *testing.T) {
	t.Run("table exists", func(t *testing.T) {
		store := setupMinimalTestStore(t)
		if _, err := store.db.Exec("CREATE TABLE test_table (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
			t.Fatalf("failed to create test table: %v", err)
		}

		exists, err := store.tableExists("test_table")
		if err != nil {
			t.Errorf("tableExists() returned unexpected error: %v", err)
		}
		if !exists {
			t.Error("tableExists() = false, want true for existing table")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		store := setupMinimalTestStore(t)
		if _, err := store.db.Exec("CREATE TABLE MixedCase (id INTEGER)"); err != nil {
			t.Fatalf("failed to create test table: %v", err)
		}
		exists, err := store.tableExists("mixedcase")
		if err != nil || !exists {
			t.Errorf("tableExists() = (%v, %v), want (true, nil)", exists, err)
		}
	})

	t.Run("table does not exist", func(t *testing.T) {
		store := setupMinimalTestStore(t)
		exists, err := store.tableExists("nonexistent_table")
		if err != nil {
			t.Errorf("tableExists() returned unexpected error: %v", err)
		}
		if exists {
			t.Error("tableExists() = true, want false for nonexistent table")
		}
	})
}

func TestInitLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "unscroll.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.SetRaw("access_control", []byte(`{"current_day":2}`)); err != nil {
		t.Fatalf("SetRaw() error = %v", err)
	}
	if err := store.SetRaw("access_control", []byte(`{"current_day":3}`)); err != nil {
		t.Fatalf("SetRaw() upsert error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()

	raw, ok, err := reopened.GetRaw("access_control")
	if err != nil || !ok {
		t.Fatalf("GetRaw() = (%v, %v)", ok, err)
	}
	if string(raw) != `{"current_day":3}` {
		t.Errorf("GetRaw() = %s, want upserted value", raw)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "access_control" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := reopened.Delete("access_control"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := reopened.GetRaw("access_control"); ok {
		t.Error("key still present after Delete")
	}

	st, err := reopened.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if !st.UpToDate() {
		t.Errorf("schema not up to date: %+v", st)
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing file should fail")
	}
	if _, _, err := store.GetRaw("k"); err != ErrNotLoaded {
		t.Errorf("GetRaw() error = %v, want ErrNotLoaded", err)
	}
}
