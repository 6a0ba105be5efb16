package settings

import (
	"fmt"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Interval  *int  `help:"Minutes between hydration reminders (15-480)."`
	Reminders *bool `help:"Enable or disable hydration reminders."`
	Goal      *int  `help:"Daily hydration goal in ml."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List {
		s := ctx.Store.Settings()
		ctx.Println("Current Settings:")
		ctx.Printf("  Reminders Enabled:   %v\n", s.Enabled)
		ctx.Printf("  Reminder Interval:   %d min\n", s.Interval)
		ctx.Printf("  Daily Goal:          %d ml\n", s.DailyGoalML)
		return nil
	}

	if c.Interval == nil && c.Reminders == nil && c.Goal == nil {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if c.Goal != nil && *c.Goal < 1 {
		return fmt.Errorf("goal must be at least 1 ml")
	}
	if c.Interval != nil && (*c.Interval < constants.MinReminderIntervalMin || *c.Interval > constants.MaxReminderIntervalMin) {
		ctx.Printf("Interval will be clamped to %d-%d minutes.\n", constants.MinReminderIntervalMin, constants.MaxReminderIntervalMin)
	}

	ctx.Store.UpdateSettings(ctx.Ctx, func(s *models.Settings) {
		if c.Interval != nil {
			s.Interval = *c.Interval
		}
		if c.Reminders != nil {
			s.Enabled = *c.Reminders
		}
		if c.Goal != nil {
			s.DailyGoalML = *c.Goal
		}
	})
	ctx.Println("Settings updated successfully.")
	return nil
}
