package program

import (
	"github.com/unscroll/unscroll/internal/catalog"
	"github.com/unscroll/unscroll/internal/cli"
)

type ActivityCmd struct {
	Day  int  `arg:"" optional:"" help:"Program day (1-30). Defaults to the current day."`
	List bool `help:"List every activity title."`
}

func (c *ActivityCmd) Run(ctx *cli.Context) error {
	if c.List {
		for _, a := range catalog.All() {
			ctx.Printf("%2d  %s\n", a.Day, a.Title)
		}
		return nil
	}

	day := c.Day
	if day == 0 {
		rec, err := ctx.Records.AccessRecord()
		if err != nil {
			return err
		}
		day = rec.Normalize().CurrentDay
	}

	a := catalog.Get(day)
	ctx.Printf("Day %d: %s\n\n", a.Day, a.Title)
	ctx.Println(renderMarkdown(a.Description))
	if a.ReflectionPrompt != "" {
		ctx.Printf("\nReflect: %s\n", a.ReflectionPrompt)
	}
	return nil
}
