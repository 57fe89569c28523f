package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/keyring"
	"github.com/unscroll/unscroll/internal/storage"
)

// newTestContext wires a command context over store with output captured.
func newTestContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Notifications.Tray = false

	ctx, err := cli.NewContext(cfg, store, keyring.SourceConfig)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	return ctx, out
}

func newSQLiteContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "unscroll.db")
	store := storage.NewSQLiteStore(dbPath)
	t.Cleanup(func() { _ = store.Close() })
	ctx, out := newTestContext(t, store)
	return ctx, dbPath, out
}
