package program

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unscroll/unscroll/internal/access"
	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/logger"
	"github.com/unscroll/unscroll/internal/utils"
)

type CountdownCmd struct {
	Watch bool `short:"w" help:"Keep counting until interrupted."`
}

func (c *CountdownCmd) Run(ctx *cli.Context) error {
	if !c.Watch {
		ctx.Printf("Next day unlocks in %s\n", utils.FormatCountdown(utils.SecondsUntilMidnight(ctx.Clock.Now())))
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	access.Countdown(runCtx, ctx.Clock, time.Second,
		func(seconds int) {
			ctx.Printf("\rNext day unlocks in %s ", utils.FormatCountdown(seconds))
		},
		func() {
			today, err := ctx.Service.Visit()
			if err != nil {
				logger.Warn("Failed to advance day at midnight", "error", err)
				return
			}
			ctx.Printf("\nDay %d unlocked: %s\n", today.Decision.Record.CurrentDay, today.Activity.Title)
		},
	)
	ctx.Println()
	return nil
}
