package program

import (
	"encoding/json"
	"fmt"

	"github.com/unscroll/unscroll/internal/achievements"
	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
)

type StatsCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Service.Stats()
	if err != nil {
		return err
	}
	if c.JSON {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	ctx.Printf("Level %d (%d stars, %d to next)\n", stats.Level, stats.TotalStars, stats.StarsToNextLevel)
	ctx.Printf("  Days completed:  %d/%d\n", stats.DaysCompleted, constants.ChallengeDays)
	ctx.Printf("  Current streak:  %d\n", stats.CurrentStreak)
	ctx.Printf("  Reflections:     %d\n", stats.TotalReflections)
	ctx.Printf("  Perfect days:    %d\n", stats.PerfectCompletions)
	ctx.Printf("  Time recovered:  %d min\n", stats.TotalTimeRecoveredMinutes)
	ctx.Printf("  Achievements:    %d/%d\n", stats.UnlockedCount(), len(achievements.Catalog()))
	ctx.PrintToasts()
	return nil
}

type AchievementsCmd struct {
	All bool `help:"Include locked achievements."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Service.Stats()
	if err != nil {
		return err
	}

	shown := 0
	for _, a := range stats.Achievements {
		switch {
		case a.Unlocked:
			when := ""
			if a.UnlockedAt != nil {
				when = a.UnlockedAt.Format(constants.DateFormat)
			}
			ctx.Printf("%s %-22s +%-3d %s  %s\n", a.Icon, a.Name, a.Stars, when, a.Description)
			shown++
		case c.All:
			ctx.Printf("·  %-22s +%-3d %s\n", a.Name, a.Stars, a.Description)
			shown++
		}
	}
	if shown == 0 {
		ctx.Println("No achievements yet. Complete today's activity to earn your first.")
	}
	ctx.PrintToasts()
	return nil
}
