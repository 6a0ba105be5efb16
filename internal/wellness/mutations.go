package wellness

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/utils"
)

// MoodInput describes a journal entry to record. Date defaults to today and
// Emoji defaults to the matching mood option.
type MoodInput struct {
	Date   string
	Emoji  string
	Mood   string
	Note   string
	Rating int
}

// HabitInput describes a habit to add
type HabitInput struct {
	Name   string
	Icon   string
	Color  string
	Target float64
	Unit   string
}

// RecordMood prepends a new mood entry. Entries are never deduplicated by date.
func (s *Store) RecordMood(ctx context.Context, in MoodInput) error {
	in.Mood = strings.TrimSpace(in.Mood)
	if in.Mood == "" {
		return ErrInvalidMood
	}
	if in.Rating != 0 && (in.Rating < constants.MinMoodRating || in.Rating > constants.MaxMoodRating) {
		return ErrInvalidRating
	}
	if in.Emoji == "" {
		if opt, ok := models.LookupMoodOption(in.Mood); ok {
			in.Emoji = opt.Emoji
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	date := in.Date
	if date == "" {
		date = s.Today()
	} else if err := utils.ValidateDate(date); err != nil {
		return err
	}

	entry := models.MoodEntry{
		ID:        s.newID(),
		Date:      date,
		Emoji:     in.Emoji,
		Mood:      in.Mood,
		Note:      in.Note,
		Rating:    in.Rating,
		Timestamp: s.timestamp(),
	}

	next := s.data.Clone()
	next.Moods = append([]models.MoodEntry{entry}, next.Moods...)
	s.commit(ctx, "record_mood", next)
	return nil
}

// AddHydration adds amount to today's entry, creating it when missing
func (s *Store) AddHydration(ctx context.Context, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	next := s.data.Clone()

	found := false
	for i := range next.Hydration {
		if next.Hydration[i].Date == today {
			next.Hydration[i].Amount += amount
			next.Hydration[i].Timestamp = s.timestamp()
			found = true
			break
		}
	}
	if !found {
		entry := models.HydrationEntry{
			ID:        s.newID(),
			Date:      today,
			Amount:    amount,
			Timestamp: s.timestamp(),
		}
		next.Hydration = append([]models.HydrationEntry{entry}, next.Hydration...)
	}

	s.commit(ctx, "add_hydration", next)
	return nil
}

// RemoveHydration subtracts amount from today's entry, never going below zero.
// Without an entry for today there is nothing to remove.
func (s *Store) RemoveHydration(ctx context.Context, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	next := s.data.Clone()
	for i := range next.Hydration {
		if next.Hydration[i].Date == today {
			next.Hydration[i].Amount = max(next.Hydration[i].Amount-amount, 0)
			next.Hydration[i].Timestamp = s.timestamp()
			s.commit(ctx, "remove_hydration", next)
			return nil
		}
	}
	return nil
}

// SetHabitProgress upserts today's entry for habitID. Completed is value > 0,
// which is looser than meeting the target.
func (s *Store) SetHabitProgress(ctx context.Context, habitID string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findHabit(s.data.Habits, habitID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHabit, habitID)
	}

	today := s.Today()
	next := s.data.Clone()

	found := false
	for i := range next.HabitEntries {
		e := &next.HabitEntries[i]
		if e.HabitID == habitID && e.Date == today {
			e.Value = value
			e.Completed = value > 0
			e.Timestamp = s.timestamp()
			found = true
			break
		}
	}
	if !found {
		entry := models.HabitEntry{
			ID:        s.newID(),
			HabitID:   habitID,
			Date:      today,
			Completed: value > 0,
			Value:     value,
			Timestamp: s.timestamp(),
		}
		next.HabitEntries = append([]models.HabitEntry{entry}, next.HabitEntries...)
	}

	s.commit(ctx, "set_habit_progress", next)
	return nil
}

// AddHabit appends a habit and returns its id
func (s *Store) AddHabit(ctx context.Context, in HabitInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return "", ErrInvalidName
	}
	if !(in.Target > 0) || math.IsInf(in.Target, 0) {
		return "", ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habit := models.Habit{
		ID:        s.newID(),
		Name:      in.Name,
		Icon:      in.Icon,
		Color:     in.Color,
		Target:    in.Target,
		Unit:      in.Unit,
		CreatedAt: s.timestamp(),
	}

	next := s.data.Clone()
	next.Habits = append(next.Habits, habit)
	s.commit(ctx, "add_habit", next)
	return habit.ID, nil
}

// DeleteMood removes the mood entry with id
func (s *Store) DeleteMood(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	idx := -1
	for i, m := range next.Moods {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: mood %s", ErrNotFound, id)
	}

	next.Moods = append(next.Moods[:idx], next.Moods[idx+1:]...)
	s.commit(ctx, "delete_mood", next)
	return nil
}

// UpdateMood rewrites the mood, emoji, note and rating of an entry. The id,
// date and timestamp of the original entry are kept, and in.Date is ignored.
func (s *Store) UpdateMood(ctx context.Context, id string, in MoodInput) error {
	in.Mood = strings.TrimSpace(in.Mood)
	if in.Mood == "" {
		return ErrInvalidMood
	}
	if in.Rating != 0 && (in.Rating < constants.MinMoodRating || in.Rating > constants.MaxMoodRating) {
		return ErrInvalidRating
	}
	if in.Emoji == "" {
		if opt, ok := models.LookupMoodOption(in.Mood); ok {
			in.Emoji = opt.Emoji
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	for i := range next.Moods {
		m := &next.Moods[i]
		if m.ID != id {
			continue
		}
		m.Mood = in.Mood
		m.Emoji = in.Emoji
		m.Note = in.Note
		m.Rating = in.Rating
		s.commit(ctx, "update_mood", next)
		return nil
	}
	return fmt.Errorf("%w: mood %s", ErrNotFound, id)
}

// UpdateHabit replaces a habit's editable fields, keeping its id and createdAt
func (s *Store) UpdateHabit(ctx context.Context, id string, in HabitInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrInvalidName
	}
	if !(in.Target > 0) || math.IsInf(in.Target, 0) {
		return ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	for i := range next.Habits {
		h := &next.Habits[i]
		if h.ID != id {
			continue
		}
		h.Name = in.Name
		h.Icon = in.Icon
		h.Color = in.Color
		h.Target = in.Target
		h.Unit = in.Unit
		s.commit(ctx, "update_habit", next)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownHabit, id)
}

// DeleteHabit removes a habit together with every entry recorded against it
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := findHabit(s.data.Habits, id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHabit, id)
	}

	next := s.data.Clone()
	habits := next.Habits[:0]
	for _, h := range next.Habits {
		if h.ID != id {
			habits = append(habits, h)
		}
	}
	next.Habits = habits

	entries := next.HabitEntries[:0]
	for _, e := range next.HabitEntries {
		if e.HabitID != id {
			entries = append(entries, e)
		}
	}
	next.HabitEntries = entries

	s.commit(ctx, "delete_habit", next)
	return nil
}

// ReplaceDataset overwrites the whole dataset, as an import does. Unlike the
// journal mutations it reports a failed write to the caller.
func (s *Store) ReplaceDataset(ctx context.Context, ds models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, ds.Clone()); err != nil {
		return fmt.Errorf("failed to save imported data: %w", err)
	}
	return nil
}

// RestoreDataset replaces the dataset with a stored blob, merged over
// defaults the way Load does. A blob that is not a JSON object is refused.
func (s *Store) RestoreDataset(ctx context.Context, blob string) error {
	ds, err := models.MergeOverDefaults([]byte(blob))
	if err != nil {
		return err
	}
	return s.ReplaceDataset(ctx, ds)
}

func findHabit(habits []models.Habit, id string) (models.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}
