package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/cli/backups"
	"github.com/unscroll/unscroll/internal/cli/program"
	"github.com/unscroll/unscroll/internal/cli/system"
	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Store   string `help:"Override the store: a .db or .json path, a PostgreSQL connection string without a password, or 'keyring'."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize unscroll storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the local JSON API."`

	Today        program.TodayCmd        `cmd:"" help:"Show today's activity and the unlock countdown."`
	Complete     program.CompleteCmd     `cmd:"" help:"Mark today's activity done."`
	Stats        program.StatsCmd        `cmd:"" help:"Show progress, streak and level."`
	Achievements program.AchievementsCmd `cmd:"" help:"List achievements."`
	Activity     program.ActivityCmd     `cmd:"" help:"Show an activity from the 30-day catalog."`
	Emergency    program.EmergencyCmd    `cmd:"" help:"Log or list emergency actions."`
	Reset        program.ResetCmd        `cmd:"" help:"Restart the program from day 1."`
	Countdown    program.CountdownCmd    `cmd:"" help:"Show the time until the next activity unlocks."`
	Remind       program.RemindCmd       `cmd:"" help:"Send a reminder if today's activity is still open."`
	Scroll       program.ScrollCmd       `cmd:"" help:"Scroll behaviour tools."`

	Backup  backups.BackupCmd `cmd:"" help:"Manage store backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug   system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A 30-day program for breaking the scrolling habit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Verbose {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(fmt.Errorf("invalid config %s: %w", CLI.Config, err))
	}

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir(),
		Quiet:     command == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	// Keyring commands run before any store exists
	if strings.HasPrefix(command, "keyring") {
		errors.Fatal(ctx.Run(&cli.Context{Config: cfg, ConfigPath: CLI.Config, Out: os.Stdout, In: os.Stdin}))
		return
	}

	store, source, err := cli.OpenStore(cfg.Store)
	if err != nil {
		errors.Fatal(err)
	}

	// init creates the store; doctor reports on loading it itself
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx, err := cli.NewContext(cfg, store, source)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx.ConfigPath = CLI.Config

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
