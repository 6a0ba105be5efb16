package water

import (
	"errors"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/wellness"
)

type WaterCmd struct {
	Add     WaterAddCmd     `cmd:"" help:"Log water you drank."`
	Remove  WaterRemoveCmd  `cmd:"" help:"Take back water logged today by mistake."`
	Today   WaterTodayCmd   `cmd:"" help:"Show today's intake against the goal." default:"1"`
	History WaterHistoryCmd `cmd:"" help:"Show recent daily totals."`
}

type WaterAddCmd struct {
	Amount int `arg:"" optional:"" help:"Amount in ml (rounded to 50 ml, 50-2000)."`
	Quick  int `short:"q" help:"Quick amount: 1=250, 2=500, 3=750, 4=1000 ml."`
}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	amount, err := resolveAmount(c.Amount, c.Quick)
	if err != nil {
		return err
	}

	if err := ctx.Store.AddHydration(ctx.Ctx, amount); err != nil {
		return err
	}

	p := ctx.Store.HydrationProgress()
	ctx.Printf("✓ Added %d ml. Today: %d / %d ml\n", amount, p.Total, p.Goal)
	return nil
}

type WaterRemoveCmd struct {
	Amount int `arg:"" optional:"" help:"Amount in ml (rounded to 50 ml, 50-2000)."`
	Quick  int `short:"q" help:"Quick amount: 1=250, 2=500, 3=750, 4=1000 ml."`
}

func (c *WaterRemoveCmd) Run(ctx *cli.Context) error {
	amount, err := resolveAmount(c.Amount, c.Quick)
	if err != nil {
		return err
	}

	before := ctx.Store.HydrationProgress().Total
	if before == 0 {
		ctx.Println("Nothing logged today.")
		return nil
	}
	if err := ctx.Store.RemoveHydration(ctx.Ctx, amount); err != nil {
		return err
	}

	p := ctx.Store.HydrationProgress()
	ctx.Printf("✓ Removed %d ml. Today: %d / %d ml\n", before-p.Total, p.Total, p.Goal)
	return nil
}

type WaterTodayCmd struct{}

func (c *WaterTodayCmd) Run(ctx *cli.Context) error {
	p := ctx.Store.HydrationProgress()
	ctx.Printf("💧 %d / %d ml  %s %.0f%%\n", p.Total, p.Goal, cli.ProgressBar(p.Percent, 20), p.Percent)
	if p.Remaining > 0 {
		ctx.Printf("%d ml to go\n", p.Remaining)
	} else {
		ctx.Println("Goal reached!")
	}
	if streak := ctx.Store.HydrationStreak(); streak > 0 {
		ctx.Printf("Streak: %d day(s)\n", streak)
	}
	return nil
}

type WaterHistoryCmd struct {
	Limit int `short:"n" help:"Number of days to show." default:"7"`
}

func (c *WaterHistoryCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.RecentHydration(c.Limit)
	if len(entries) == 0 {
		ctx.Println("No water logged yet.")
		return nil
	}
	for _, e := range entries {
		ctx.Printf("%s  %5d ml  (last at %s)\n", e.Date, e.Amount,
			e.Time().In(ctx.Store.Location()).Format(constants.TimeFormat))
	}
	return nil
}

func resolveAmount(amount, quick int) (int, error) {
	switch {
	case quick != 0 && amount != 0:
		return 0, errors.New("give either an amount or --quick, not both")
	case quick != 0:
		return wellness.QuickAmount(quick)
	case amount > 0:
		return wellness.ClampCustomAmount(amount), nil
	default:
		return 0, errors.New("amount must be greater than zero (or use --quick 1-4)")
	}
}
