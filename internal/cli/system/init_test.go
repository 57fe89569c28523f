package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/storage"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := newSQLiteContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created at %s: %v", dbPath, err)
	}
	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		t.Errorf("default config was not written: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized unscroll storage") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := newSQLiteContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _, _ := newSQLiteContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := ctx.Service.Complete(ledger.Completion{Status: string(constants.StatusYes)}, progress.CompleteOptions{}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}

	entries, err := ctx.Records.DayProgress()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("force init kept %d ledger entries", len(entries))
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, _ := newSQLiteContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Fatalf("expected same-source error, got %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("store was deleted: %v", err)
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "old.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	srcCtx, _ := newTestContext(t, src)
	if _, err := srcCtx.Service.Complete(ledger.Completion{Status: string(constants.StatusYes), ReflectionText: "Walked."}, progress.CompleteOptions{}); err != nil {
		t.Fatal(err)
	}

	ctx, _, out := newSQLiteContext(t)
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	if !strings.Contains(out.String(), constants.KeyDayProgress) {
		t.Errorf("copied keys not listed:\n%s", out)
	}

	entries, err := ctx.Records.DayProgress()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ReflectionText != "Walked." {
		t.Errorf("copied ledger = %+v", entries)
	}
}
