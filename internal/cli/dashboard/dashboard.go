package dashboard

import (
	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/cli/moods"
	"github.com/julianstephens/wellness/internal/constants"
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	s := ctx.Store
	ctx.Printf("Wellness for %s\n\n", s.Today())

	overall := s.OverallCompletion()
	ctx.Printf("Habits     %s %3d%%  streak %d day(s)\n", cli.ProgressBar(float64(overall), 20), overall, s.HabitStreak())

	p := s.HydrationProgress()
	ctx.Printf("Hydration  %s %3.0f%%  %d / %d ml\n", cli.ProgressBar(p.Percent, 20), p.Percent, p.Total, p.Goal)

	if m, ok := s.TodayMood(); ok {
		ctx.Printf("Mood       %s %s\n", m.Emoji, m.Mood)
	} else {
		ctx.Println("Mood       not logged yet")
	}

	stats := s.MoodStats()
	if stats.Count > 0 {
		ctx.Printf("Mood trend %s %s (avg %.1f/%d)\n", moods.TrendSymbol(stats.Trend), stats.Trend, stats.Average, constants.MaxMoodRating)
	}
	return nil
}
