package moods

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/wellness"
)

type MoodCmd struct {
	Add    MoodAddCmd    `cmd:"" help:"Record how you feel."`
	List   MoodListCmd   `cmd:"" help:"List recent mood entries." default:"1"`
	Today  MoodTodayCmd  `cmd:"" help:"Show today's mood."`
	Edit   MoodEditCmd   `cmd:"" help:"Change a mood entry, keeping its date."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a mood entry."`
	Stats  MoodStatsCmd  `cmd:"" help:"Show average rating and trend."`
}

type MoodAddCmd struct {
	Label  string `help:"Mood label (Happy, Sad, Tired, Angry, Anxious, Calm, Grateful, Confident or your own)." required:""`
	Emoji  string `help:"Emoji to show (default: the label's emoji)."`
	Note   string `help:"Optional note."`
	Rating int    `help:"Rating from 1 to 5."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	err := ctx.Store.RecordMood(ctx.Ctx, wellness.MoodInput{
		Date:   c.Date,
		Emoji:  c.Emoji,
		Mood:   c.Label,
		Note:   c.Note,
		Rating: c.Rating,
	})
	if err != nil {
		return err
	}

	emoji := c.Emoji
	if opt, ok := models.LookupMoodOption(c.Label); ok && emoji == "" {
		emoji = opt.Emoji
	}
	date := c.Date
	if date == "" {
		date = ctx.Store.Today()
	}
	ctx.Printf("✓ Recorded %s %s for %s\n", emoji, strings.TrimSpace(c.Label), date)
	return nil
}

type MoodListCmd struct {
	Limit int `short:"n" help:"Number of entries to show." default:"7"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	moods := ctx.Store.RecentMoods(c.Limit)
	if len(moods) == 0 {
		ctx.Println("No moods recorded yet.")
		return nil
	}
	for _, m := range moods {
		ctx.Println(formatMood(m, ctx))
	}
	return nil
}

type MoodTodayCmd struct{}

func (c *MoodTodayCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.TodayMood()
	if !ok {
		ctx.Println("No mood recorded today.")
		return nil
	}
	ctx.Println(formatMood(m, ctx))
	return nil
}

type MoodEditCmd struct {
	ID     string  `arg:"" help:"ID of the mood entry to edit."`
	Label  *string `help:"New mood label."`
	Emoji  *string `help:"New emoji (default: the new label's emoji)."`
	Note   *string `help:"New note. Pass an empty string to clear it."`
	Rating *int    `help:"New rating from 1 to 5, or 0 to clear it."`
}

func (c *MoodEditCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.Mood(c.ID)
	if !ok {
		return fmt.Errorf("no mood entry with id %q (see 'wellness mood list')", c.ID)
	}

	in := wellness.MoodInput{Emoji: m.Emoji, Mood: m.Mood, Note: m.Note, Rating: m.Rating}
	if c.Label != nil {
		in.Mood = *c.Label
		if opt, ok := models.LookupMoodOption(in.Mood); ok {
			in.Emoji = opt.Emoji
		}
	}
	if c.Emoji != nil {
		in.Emoji = *c.Emoji
	}
	if c.Note != nil {
		in.Note = *c.Note
	}
	if c.Rating != nil {
		in.Rating = *c.Rating
	}

	if err := ctx.Store.UpdateMood(ctx.Ctx, c.ID, in); err != nil {
		return err
	}
	updated, _ := ctx.Store.Mood(c.ID)
	ctx.Println("✓ Updated " + formatMood(updated, ctx))
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"ID of the mood entry to delete."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteMood(ctx.Ctx, c.ID); err != nil {
		if errors.Is(err, wellness.ErrNotFound) {
			return fmt.Errorf("no mood entry with id %q (see 'wellness mood list')", c.ID)
		}
		return err
	}
	ctx.Printf("Deleted mood entry %s\n", c.ID)
	return nil
}

type MoodStatsCmd struct{}

func (c *MoodStatsCmd) Run(ctx *cli.Context) error {
	stats := ctx.Store.MoodStats()
	if stats.Count == 0 {
		ctx.Println("No rated moods yet. Add one with 'wellness mood add --label Happy --rating 4'.")
		return nil
	}
	ctx.Printf("Rated entries: %d\n", stats.Count)
	ctx.Printf("Average:       %.1f / %d\n", stats.Average, constants.MaxMoodRating)
	ctx.Printf("Trend:         %s %s\n", TrendSymbol(stats.Trend), stats.Trend)
	return nil
}

// TrendSymbol returns an arrow for a mood trend
func TrendSymbol(trend string) string {
	switch trend {
	case constants.TrendImproving:
		return "↑"
	case constants.TrendDeclining:
		return "↓"
	case constants.TrendStable:
		return "→"
	default:
		return "·"
	}
}

func formatMood(m models.MoodEntry, ctx *cli.Context) string {
	line := fmt.Sprintf("%s  %s  %s %s", m.Date, m.Time().In(ctx.Store.Location()).Format(constants.TimeFormat), m.Emoji, m.Mood)
	if m.Rating > 0 {
		line += fmt.Sprintf("  (%d/%d)", m.Rating, constants.MaxMoodRating)
	}
	if m.Note != "" {
		line += "  " + m.Note
	}
	return line + "  [" + m.ID + "]"
}
