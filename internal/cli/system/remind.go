package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/notifier"
	"github.com/julianstephens/wellness/internal/reminder"
	"github.com/julianstephens/wellness/internal/watch"
)

type RemindCmd struct {
	Once    bool `help:"Check once and exit instead of running in the foreground."`
	Console bool `help:"Print reminders to the terminal instead of the tray app."`

	notifier notifier.Notifier
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	n := c.notifier
	if n == nil {
		n = defaultNotifier(ctx, c.Console)
	}
	runner := reminder.NewRunner(ctx.Store, n)

	if c.Once {
		if !runner.Check(ctx.Ctx) {
			s := ctx.Store.Settings()
			if !s.Enabled {
				ctx.Println("Reminders are disabled. Enable them with 'wellness settings --reminders'.")
			}
		}
		return nil
	}

	s := ctx.Store.Settings()
	if !s.Enabled {
		ctx.Println("Reminders are disabled; waiting for them to be enabled.")
	}
	ctx.Printf("Hydration reminders every %d min. Press Ctrl+C to stop.\n", s.Interval)

	sigCtx, stop := signal.NotifyContext(ctx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runReminders(sigCtx, ctx, runner)
}

// runReminders runs the reminder loop and, for file-backed storage, a watcher
// that reloads the store when another process writes to it.
func runReminders(ctx context.Context, c *cli.Context, runner *reminder.Runner) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(gctx)
	})

	if path := c.WatchPath(); path != "" {
		w, err := watch.New(path)
		if err != nil {
			logger.Warn("File watching disabled", "path", path, "error", err)
		} else {
			g.Go(func() error {
				return w.Run(gctx, func() {
					logger.Debug("Storage changed, reloading", "path", path)
					c.Store.Reload(gctx)
				})
			})
		}
	}
	return g.Wait()
}
