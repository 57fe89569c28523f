package system

import (
	"fmt"
	"time"

	"github.com/unscroll/unscroll/internal/achievements"
	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/keyring"
	"github.com/unscroll/unscroll/internal/migration"
	"github.com/unscroll/unscroll/internal/utils"
)

type DoctorCmd struct{}

type migrationReporter interface {
	MigrationStatus() (migration.Status, error)
}

type check struct {
	name    string
	needsDB bool
	warning bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Access record", needsDB: true, run: checkAccessRecord},
	{name: "Ledger integrity", needsDB: true, run: checkLedger},
	{name: "Achievements", needsDB: true, warning: true, run: checkUnlocks},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Keyring", warning: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Store reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	mr, ok := ctx.Store.(migrationReporter)
	if !ok {
		// JSON stores have no schema
		return nil
	}
	status, err := mr.MigrationStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("schema at version %d, latest is %d (%d pending); run 'unscroll migrate'",
			status.Current, status.Latest, len(status.Pending))
	}
	return nil
}

func checkAccessRecord(ctx *cli.Context) error {
	rec, err := ctx.Records.AccessRecord()
	if err != nil {
		return err
	}
	if rec.LastAccessDate == "" {
		return nil
	}
	diff, err := utils.DaysBetween(rec.LastAccessDate, utils.LocalDate(ctx.Clock.Now()))
	if err != nil {
		return fmt.Errorf("last access date is malformed: %w", err)
	}
	if diff < 0 {
		return fmt.Errorf("last access date %s is in the future; check the system clock", rec.LastAccessDate)
	}
	return nil
}

func checkLedger(ctx *cli.Context) error {
	entries, err := ctx.Records.DayProgress()
	if err != nil {
		return err
	}
	rec, err := ctx.Records.AccessRecord()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Day > rec.CurrentDay {
			return fmt.Errorf("entry for day %d is ahead of the current day %d", e.Day, rec.CurrentDay)
		}
		if e.Completed && e.CompletedAt == nil {
			return fmt.Errorf("day %d is completed but has no completion time", e.Day)
		}
	}
	return nil
}

func checkUnlocks(ctx *cli.Context) error {
	unlocks, err := ctx.Records.Unlocks()
	if err != nil {
		return err
	}
	for _, u := range unlocks {
		if _, ok := achievements.Lookup(u.ID); !ok {
			return fmt.Errorf("unknown achievement %q is kept but not shown", u.ID)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return fmt.Errorf("backups not available for this store: %v", err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}

	age := time.Since(backups[0].Timestamp)
	if age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old (keeping at most %d)", int(age.Hours()/24), constants.MaxBackups)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	now := ctx.Clock.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Source != keyring.SourceKeyring {
		return nil
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetConnectionString(); err != nil {
		return fmt.Errorf("store is %q but %w", constants.KeyringLocation, err)
	}
	return nil
}
