package wellness

import (
	"math"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/utils"
)

// HydrationProgress compares today's total with the configured daily goal
func (s *Store) HydrationProgress() models.HydrationProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := hydrationOn(s.data.Hydration, s.Today())
	goal := s.settings.DailyGoalML
	p := models.HydrationProgress{
		Total:     total,
		Goal:      goal,
		Remaining: max(goal-total, 0),
	}
	if goal > 0 {
		p.Percent = math.Min(float64(total)/float64(goal)*100, 100)
	}
	return p
}

// HabitStreak counts consecutive days, ending today, on which every habit met
// its target. Zero when there are no habits or today is incomplete.
func (s *Store) HabitStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.data.Habits) == 0 {
		return 0
	}

	values := make(map[string]map[string]float64)
	for _, e := range s.data.HabitEntries {
		if values[e.Date] == nil {
			values[e.Date] = make(map[string]float64)
		}
		if _, seen := values[e.Date][e.HabitID]; !seen {
			values[e.Date][e.HabitID] = e.Value
		}
	}

	allMet := func(day string) bool {
		logged, ok := values[day]
		if !ok {
			return false
		}
		for _, h := range s.data.Habits {
			if logged[h.ID] < h.Target {
				return false
			}
		}
		return true
	}
	return countBack(s.Today(), len(values), allMet)
}

// HydrationStreak counts consecutive days, ending today, whose total reached the goal
func (s *Store) HydrationStreak() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]int, len(s.data.Hydration))
	for _, e := range s.data.Hydration {
		if _, seen := totals[e.Date]; !seen {
			totals[e.Date] = e.Amount
		}
	}
	goal := s.settings.DailyGoalML
	return countBack(s.Today(), len(totals), func(day string) bool {
		amount, ok := totals[day]
		return ok && amount >= goal
	})
}

// countBack walks back from start while ok holds, at most limit days
func countBack(start string, limit int, ok func(day string) bool) int {
	streak := 0
	day := start
	for streak < limit && ok(day) {
		streak++
		prev, err := utils.PreviousDay(day)
		if err != nil {
			break
		}
		day = prev
	}
	return streak
}

// MoodStats averages rated entries and compares the newest three with the three before
func (s *Store) MoodStats() models.MoodStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ratings []float64
	for _, m := range s.data.Moods {
		if m.Rating >= constants.MinMoodRating && m.Rating <= constants.MaxMoodRating {
			ratings = append(ratings, float64(m.Rating))
		}
	}

	stats := models.MoodStats{Count: len(ratings), Trend: constants.TrendNeutral}
	if len(ratings) == 0 {
		return stats
	}
	stats.Average = math.Round(mean(ratings)*10) / 10

	if len(ratings) < 2 {
		return stats
	}
	recentGroup := ratings[:min(constants.TrendWindow, len(ratings))]
	if len(ratings) <= constants.TrendWindow {
		return stats
	}
	olderGroup := ratings[constants.TrendWindow:min(2*constants.TrendWindow, len(ratings))]

	recentAvg, olderAvg := mean(recentGroup), mean(olderGroup)
	switch {
	case recentAvg > olderAvg+constants.TrendThreshold:
		stats.Trend = constants.TrendImproving
	case recentAvg < olderAvg-constants.TrendThreshold:
		stats.Trend = constants.TrendDeclining
	default:
		stats.Trend = constants.TrendStable
	}
	return stats
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
