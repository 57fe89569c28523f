package program

import (
	"github.com/unscroll/unscroll/internal/cli"
)

type ResetCmd struct {
	All bool `help:"Also erase the ledger, achievements and emergency log."`
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		prompt := "Restart the program at day 1?"
		if c.All {
			prompt = "Erase all progress and restart at day 1? A backup is taken first."
		}
		ok, err := ctx.Confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	backupPath, err := ctx.Service.Reset(c.All)
	if err != nil {
		return err
	}
	if backupPath != "" {
		ctx.Printf("Backup saved to %s\n", backupPath)
	}
	ctx.Println("✓ Program restarted at day 1")
	return nil
}
