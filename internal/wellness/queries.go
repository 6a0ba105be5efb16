package wellness

import (
	"math"

	"github.com/julianstephens/wellness/internal/models"
)

// TodayHydration returns today's hydration total, or 0
func (s *Store) TodayHydration() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return hydrationOn(s.data.Hydration, s.Today())
}

// TodayHabitEntries returns every habit entry dated today
func (s *Store) TodayHabitEntries() []models.HabitEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.Today()
	out := []models.HabitEntry{}
	for _, e := range s.data.HabitEntries {
		if e.Date == today {
			out = append(out, e)
		}
	}
	return out
}

// TodayMood returns the first mood entry dated today in collection order
func (s *Store) TodayMood() (models.MoodEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.Today()
	for _, m := range s.data.Moods {
		if m.Date == today {
			return m, true
		}
	}
	return models.MoodEntry{}, false
}

// HabitProgress returns today's progress for habitID. Unknown habits yield zeros.
func (s *Store) HabitProgress(habitID string) models.HabitProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habit, ok := findHabit(s.data.Habits, habitID)
	if !ok {
		return models.HabitProgress{}
	}
	return progressFor(habit, habitValueOn(s.data.HabitEntries, habitID, s.Today()))
}

// OverallCompletion is the rounded percentage of habits whose value today
// meets the target. No habits means 0.
func (s *Store) OverallCompletion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.data.Habits) == 0 {
		return 0
	}
	today := s.Today()
	met := 0
	for _, h := range s.data.Habits {
		if habitValueOn(s.data.HabitEntries, h.ID, today) >= h.Target {
			met++
		}
	}
	return int(math.Round(float64(met) / float64(len(s.data.Habits)) * 100))
}

// Habits returns the habits in insertion order
func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Habit{}, s.data.Habits...)
}

// Habit looks up one habit by id
func (s *Store) Habit(id string) (models.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findHabit(s.data.Habits, id)
}

// Mood looks up a mood entry by id
func (s *Store) Mood(id string) (models.MoodEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.data.Moods {
		if m.ID == id {
			return m, true
		}
	}
	return models.MoodEntry{}, false
}

// RecentMoods returns up to n moods in stored (most-recent-first) order
func (s *Store) RecentMoods(n int) []models.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recent(s.data.Moods, n)
}

// RecentHydration returns up to n daily hydration entries in stored order
func (s *Store) RecentHydration(n int) []models.HydrationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recent(s.data.Hydration, n)
}

// RecentHabitEntries returns up to n habit entries in stored order
func (s *Store) RecentHabitEntries(n int) []models.HabitEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return recent(s.data.HabitEntries, n)
}

func recent[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	return append([]T{}, items[:n]...)
}

func progressFor(h models.Habit, current float64) models.HabitProgress {
	p := models.HabitProgress{Current: current, Target: h.Target, Unit: h.Unit}
	if h.Target > 0 {
		p.Progress = math.Min(current/h.Target*100, 100)
	}
	return p
}

func hydrationOn(entries []models.HydrationEntry, day string) int {
	for _, e := range entries {
		if e.Date == day {
			return e.Amount
		}
	}
	return 0
}

func habitValueOn(entries []models.HabitEntry, habitID, day string) float64 {
	for _, e := range entries {
		if e.HabitID == habitID && e.Date == day {
			return e.Value
		}
	}
	return 0
}
