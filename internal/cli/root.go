package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unscroll/unscroll/internal/backup"
	"github.com/unscroll/unscroll/internal/config"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/keyring"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/progress"
	"github.com/unscroll/unscroll/internal/scroll"
	"github.com/unscroll/unscroll/internal/storage"
	"github.com/unscroll/unscroll/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      storage.Provider
	Source     keyring.Source
	Clock      utils.Clock

	Records *storage.Records
	Service *progress.Service
	Monitor *scroll.Monitor
	// Toasts collects what the service announced during a command so the
	// command can print it.
	Toasts *notifier.Recorder
	// Notify is every toast destination, Toasts included.
	Notify notifier.Sink

	Out io.Writer
	In  io.Reader
}

// OpenStore resolves location through the environment and the OS keyring
// and builds the matching provider. The provider is not loaded.
func OpenStore(location string) (storage.Provider, keyring.Source, error) {
	resolved, err := keyring.ResolveStore(location)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve store: %w", err)
	}

	var store storage.Provider
	if resolved.Trusted() && storage.IsPostgres(resolved.Location) {
		store, err = storage.NewWithCredentials(resolved.Location)
	} else {
		store, err = storage.New(config.ExpandHome(resolved.Location))
	}
	if err != nil {
		return nil, "", err
	}
	return store, resolved.Source, nil
}

// NewContext wires the service and the scroll monitor over store. Toasts go
// to the log, to Toasts and, when enabled, to the tray companion.
func NewContext(cfg *config.Config, store storage.Provider, source keyring.Source) (*Context, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	clock := utils.SystemClock{Location: loc}

	ctx := &Context{
		Config:  cfg,
		Store:   store,
		Source:  source,
		Clock:   clock,
		Records: storage.NewRecords(store),
		Toasts:  &notifier.Recorder{},
		Out:     os.Stdout,
		In:      os.Stdin,
	}

	sinks := notifier.Multi{notifier.LogSink{}, ctx.Toasts}
	if cfg.Notifications.Tray {
		sinks = append(sinks, notifier.NewTraySink())
	}

	ctx.Notify = sinks

	opts := []progress.Option{progress.WithClock(clock), progress.WithSink(sinks)}
	if fn := ctx.BackupFunc(); fn != nil {
		opts = append(opts, progress.WithBackup(fn))
	}
	ctx.Service = progress.New(ctx.Records, opts...)
	ctx.Monitor = scroll.NewMonitor(cfg.Scroll, clock)
	return ctx, nil
}

// BackupManager returns the backup manager for a file-based store.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*storage.PostgresStore); ok {
		return nil, backup.ErrUnsupportedStore
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// BackupFunc is the labelled-snapshot hook for the service, or nil when the
// store cannot be backed up.
func (c *Context) BackupFunc() progress.BackupFunc {
	mgr, err := c.BackupManager()
	if err != nil {
		return nil
	}
	return mgr.CreateLabeledBackup
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// WatchScroll subscribes to the monitor's ticks. Label changes are logged
// and turning excessive raises a toast. It returns the unsubscribe func.
func (c *Context) WatchScroll() func() {
	return c.Monitor.Subscribe(scroll.OnLabelChange(func(prev, next scroll.Reading) {
		logger.Info("Scroll label changed",
			"from", prev.Label,
			"to", next.Label,
			"frequency", next.Frequency,
			"avg_speed", next.AvgSpeed)
		if next.Label != constants.ScrollExcessive || c.Notify == nil {
			return
		}
		c.Notify.Notify(notifier.Toast{
			Title:       "Excessive scrolling",
			Description: fmt.Sprintf("%.1f events/s. Take a breath and put the feed down.", next.Frequency),
			Severity:    constants.SeverityWarning,
		})
	}))
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// PrintToasts prints every toast raised since the last call.
func (c *Context) PrintToasts() {
	if c.Toasts == nil {
		return
	}
	for _, t := range c.Toasts.Drain() {
		c.Printf("★ %s\n", t.Text())
	}
}

// Confirm asks a yes/no question on the command input. Anything but y or
// yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
