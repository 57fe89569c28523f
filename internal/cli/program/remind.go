package program

import (
	"fmt"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/notifier"
	"github.com/unscroll/unscroll/internal/utils"
)

// RemindCmd is meant for cron or a systemd timer: it nudges the tray
// companion when today's activity is still open.
type RemindCmd struct {
	DryRun bool `help:"Print the reminder instead of sending it."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Service.Visit()
	if err != nil {
		return err
	}
	if today.Decision.Locked {
		if c.DryRun {
			ctx.Println("Today's activity is already complete.")
		}
		return nil
	}

	desc := fmt.Sprintf("%s (%s left today)", today.Activity.Title, utils.FormatCountdown(today.Decision.SecondsUntilUnlock))
	toast := notifier.Toast{
		Title:       fmt.Sprintf("Day %d is waiting", today.Decision.Record.CurrentDay),
		Description: desc,
		Severity:    constants.SeverityInfo,
	}
	if c.DryRun {
		ctx.Println(toast.Text())
		return nil
	}
	if err := notifier.NewTraySink().Send(toast); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
