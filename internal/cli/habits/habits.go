package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/wellness"
)

type HabitCmd struct {
	List     HabitListCmd     `cmd:"" help:"List habits." default:"1"`
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Change a habit's name, icon, color, target or unit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its entries."`
	Set      HabitSetCmd      `cmd:"" help:"Set today's value for a habit."`
	Progress HabitProgressCmd `cmd:"" help:"Show today's progress."`
	History  HabitHistoryCmd  `cmd:"" help:"Show recent habit entries."`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found. Add one with 'wellness habit add'.")
		return nil
	}
	for _, h := range habits {
		ctx.Printf("%-4s %s %-12s target %s %s\n", h.ID, h.Icon, h.Name, cli.FormatValue(h.Target), h.Unit)
	}
	return nil
}

type HabitAddCmd struct {
	Name   string  `help:"Habit name." required:""`
	Target float64 `help:"Daily target value." required:""`
	Unit   string  `help:"Unit for the target (minutes, hours, pages...)." required:""`
	Icon   string  `help:"Emoji icon." default:"⭐"`
	Color  string  `help:"Hex color." default:"#A78BFA"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	for _, h := range ctx.Store.Habits() {
		if strings.EqualFold(h.Name, strings.TrimSpace(c.Name)) {
			return fmt.Errorf("habit with name %q already exists", h.Name)
		}
	}

	id, err := ctx.Store.AddHabit(ctx.Ctx, wellness.HabitInput{
		Name:   c.Name,
		Icon:   c.Icon,
		Color:  c.Color,
		Target: c.Target,
		Unit:   c.Unit,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", strings.TrimSpace(c.Name), id)
	return nil
}

type HabitEditCmd struct {
	ID     string   `arg:"" help:"Habit id or name."`
	Name   *string  `help:"New name."`
	Icon   *string  `help:"New emoji icon."`
	Color  *string  `help:"New hex color."`
	Target *float64 `help:"New daily target value."`
	Unit   *string  `help:"New unit."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	in := wellness.HabitInput{Name: habit.Name, Icon: habit.Icon, Color: habit.Color, Target: habit.Target, Unit: habit.Unit}
	if c.Name != nil {
		in.Name = *c.Name
		for _, h := range ctx.Store.Habits() {
			if h.ID != habit.ID && strings.EqualFold(h.Name, strings.TrimSpace(in.Name)) {
				return fmt.Errorf("habit with name %q already exists", h.Name)
			}
		}
	}
	if c.Icon != nil {
		in.Icon = *c.Icon
	}
	if c.Color != nil {
		in.Color = *c.Color
	}
	if c.Target != nil {
		in.Target = *c.Target
	}
	if c.Unit != nil {
		in.Unit = *c.Unit
	}

	if err := ctx.Store.UpdateHabit(ctx.Ctx, habit.ID, in); err != nil {
		return err
	}
	updated, _ := ctx.Store.Habit(habit.ID)
	ctx.Printf("Updated habit: %s %s, target %s %s (%s)\n", updated.Icon, updated.Name,
		cli.FormatValue(updated.Target), updated.Unit, updated.ID)
	return nil
}

type HabitDeleteCmd struct {
	ID  string `arg:"" help:"Habit id or name."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s %s and all of its entries?", habit.Icon, habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteHabit(ctx.Ctx, habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

type HabitSetCmd struct {
	ID    string  `arg:"" help:"Habit id or name."`
	Value float64 `arg:"" help:"Today's value."`
}

func (c *HabitSetCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetHabitProgress(ctx.Ctx, habit.ID, c.Value); err != nil {
		return err
	}
	p := ctx.Store.HabitProgress(habit.ID)
	ctx.Printf("%s %s: %s / %s %s (%.0f%%)\n", habit.Icon, habit.Name,
		cli.FormatValue(p.Current), cli.FormatValue(p.Target), p.Unit, p.Progress)
	return nil
}

type HabitProgressCmd struct {
	ID string `arg:"" optional:"" help:"Habit id or name (default: all habits)."`
}

func (c *HabitProgressCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if c.ID != "" {
		habit, err := resolveHabit(ctx, c.ID)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}

	for _, h := range habits {
		p := ctx.Store.HabitProgress(h.ID)
		ctx.Printf("%s %-12s %s %3.0f%%  %s / %s %s\n", h.Icon, h.Name, cli.ProgressBar(p.Progress, 10),
			p.Progress, cli.FormatValue(p.Current), cli.FormatValue(p.Target), p.Unit)
	}
	if c.ID == "" {
		ctx.Printf("\nOverall: %d%% complete, streak %d day(s)\n", ctx.Store.OverallCompletion(), ctx.Store.HabitStreak())
	}
	return nil
}

type HabitHistoryCmd struct {
	Limit int `short:"n" help:"Number of entries to show." default:"7"`
}

func (c *HabitHistoryCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.RecentHabitEntries(c.Limit)
	if len(entries) == 0 {
		ctx.Println("No habit entries yet.")
		return nil
	}
	for _, e := range entries {
		name := e.HabitID
		unit := ""
		if h, ok := ctx.Store.Habit(e.HabitID); ok {
			name = h.Icon + " " + h.Name
			unit = " " + h.Unit
		}
		mark := "·"
		if e.Completed {
			mark = "✓"
		}
		ctx.Printf("%s  %s %s  %s%s  (at %s)\n", e.Date, mark, name, cli.FormatValue(e.Value), unit,
			e.Time().In(ctx.Store.Location()).Format(constants.TimeFormat))
	}
	return nil
}

// resolveHabit accepts an id or a case-insensitive name
func resolveHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	if h, ok := ctx.Store.Habit(ref); ok {
		return h, nil
	}
	for _, h := range ctx.Store.Habits() {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %q (see 'wellness habit list')", wellness.ErrUnknownHabit, ref)
}
