package program

import (
	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/constants"
)

type EmergencyCmd struct {
	Add  EmergencyAddCmd  `cmd:"" help:"Log something you did instead of scrolling." default:"withargs"`
	List EmergencyListCmd `cmd:"" help:"Show the emergency log."`
}

type EmergencyAddCmd struct {
	Action  string `arg:"" help:"What you did instead."`
	Minutes int    `short:"m" required:"" help:"Minutes it took."`
}

func (c *EmergencyAddCmd) Run(ctx *cli.Context) error {
	action, _, err := ctx.Service.LogEmergency(c.Action, c.Minutes)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged %q (%d min)\n", action.Action, action.Minutes)
	ctx.PrintToasts()
	return nil
}

type EmergencyListCmd struct{}

func (c *EmergencyListCmd) Run(ctx *cli.Context) error {
	actions, err := ctx.Service.EmergencyLog()
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		ctx.Println("Emergency log is empty.")
		return nil
	}
	total := 0
	for _, a := range actions {
		ctx.Printf("%s  %4d min  %s\n", a.LoggedAt.Format(constants.DateFormat+" "+constants.TimeFormat), a.Minutes, a.Action)
		total += a.Minutes
	}
	ctx.Printf("\n%d actions, %d min recovered\n", len(actions), total)
	return nil
}
