package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()
	return tui.Run(ctx.Ctx, ctx.Store, ctx.WatchPath(), tea.WithAltScreen())
}
