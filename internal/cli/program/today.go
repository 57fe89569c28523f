package program

import (
	"encoding/json"
	"fmt"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
	"github.com/unscroll/unscroll/internal/models"
	"github.com/unscroll/unscroll/internal/utils"
)

type TodayCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

type todayOutput struct {
	Day                int                      `json:"day"`
	Locked             bool                     `json:"locked"`
	SecondsUntilUnlock int                      `json:"seconds_until_unlock"`
	Activity           models.Activity          `json:"activity"`
	Entry              *models.DayProgressEntry `json:"entry,omitempty"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Service.Visit()
	if err != nil {
		return err
	}
	d := today.Decision

	if c.JSON {
		out, err := json.MarshalIndent(todayOutput{
			Day:                d.Record.CurrentDay,
			Locked:             d.Locked,
			SecondsUntilUnlock: d.SecondsUntilUnlock,
			Activity:           today.Activity,
			Entry:              today.Entry,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	ctx.PrintToasts()
	ctx.Printf("Day %d of %d: %s\n", d.Record.CurrentDay, constants.ChallengeDays, today.Activity.Title)
	if mins := today.Activity.RequiredMinutes(); mins > 0 {
		ctx.Printf("About %d minutes\n", mins)
	}
	ctx.Println()
	ctx.Println(renderMarkdown(today.Activity.Description))
	ctx.Println()

	if d.Locked {
		ctx.Printf("✓ Completed. Next activity unlocks in %s\n", utils.FormatCountdown(d.SecondsUntilUnlock))
		return nil
	}
	if today.Activity.ReflectionPrompt != "" {
		ctx.Printf("Reflect: %s\n", today.Activity.ReflectionPrompt)
	}
	ctx.Printf("When you're done: unscroll complete yes --reflection \"...\"  (%s left today)\n",
		utils.FormatCountdown(d.SecondsUntilUnlock))
	return nil
}
