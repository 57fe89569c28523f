package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unscroll/unscroll/internal/cli"
	"github.com/unscroll/unscroll/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Snapshot on startup, after the store loaded
	ctx.PerformAutomaticBackup()

	m := tui.NewModel(ctx.Service, ctx.Monitor, ctx.Toasts, ctx.Clock)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
