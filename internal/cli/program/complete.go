package program

import (
	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/ledger"
	"github.com/unscroll/unscroll/internal/progress"
)

type CompleteCmd struct {
	Status     string `arg:"" enum:"yes,partial,no" help:"How it went: yes, partial or no."`
	Reflection string `short:"r" help:"What you noticed."`
	Minutes    *int   `short:"m" help:"Minutes spent. Defaults to the activity's duration."`
	Day        int    `help:"Program day to record. Defaults to the current day."`
	Revise     bool   `help:"Overwrite a day that is already completed."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Service.Complete(ledger.Completion{
		Day:              c.Day,
		Status:           c.Status,
		ReflectionText:   c.Reflection,
		TimeSpentMinutes: c.Minutes,
	}, progress.CompleteOptions{Revise: c.Revise})
	if err != nil {
		return err
	}

	e := res.Entry
	if e.Completed {
		ctx.Printf("✓ Day %d recorded (%s, %d min)\n", e.Day, e.CompletionStatus, e.TimeSpentMinutes)
	} else {
		ctx.Printf("Day %d noted as not done. It stays open for today.\n", e.Day)
	}
	ctx.Printf("Streak %d · Level %d · %d stars (%d to next)\n",
		res.Stats.CurrentStreak, res.Stats.Level, res.Stats.TotalStars, res.Stats.StarsToNextLevel)
	ctx.PrintToasts()
	return nil
}
