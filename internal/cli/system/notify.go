package system

import (
	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/notifier"
)

type NotifyCmd struct {
	Text    string `arg:"" help:"Notification text."`
	Console bool   `help:"Print to the terminal instead of the tray app."`

	notifier notifier.Notifier
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	n := c.notifier
	if n == nil {
		n = defaultNotifier(ctx, c.Console)
	}
	return n.Notify(ctx.Ctx, c.Text)
}

// defaultNotifier prefers the tray app and falls back to the terminal
func defaultNotifier(ctx *cli.Context, consoleOnly bool) notifier.Notifier {
	console := notifier.NewConsole(ctx.Out)
	if consoleOnly {
		return console
	}
	return notifier.Fallback{notifier.NewTray(), console}
}
