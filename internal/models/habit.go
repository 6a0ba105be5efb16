package models

import "time"

// Habit represents a recurring practice with a numeric daily target
type Habit struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Icon      string  `json:"icon" yaml:"icon"`
	Color     string  `json:"color" yaml:"color"`
	Target    float64 `json:"target" yaml:"target"`
	Unit      string  `json:"unit" yaml:"unit"`
	CreatedAt int64   `json:"createdAt" yaml:"createdAt"` // epoch milliseconds
}

// HabitEntry represents a single day's progress against a habit
type HabitEntry struct {
	ID        string  `json:"id" yaml:"id"`
	HabitID   string  `json:"habitId" yaml:"habitId"`
	Date      string  `json:"date" yaml:"date"` // YYYY-MM-DD format
	Completed bool    `json:"completed" yaml:"completed"`
	Value     float64 `json:"value" yaml:"value"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
}

// Time returns the time the entry was last updated
func (e HabitEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// HabitProgress is today's value for one habit relative to its target.
// Progress is a percentage clamped to [0, 100].
type HabitProgress struct {
	Current  float64 `json:"current" yaml:"current"`
	Target   float64 `json:"target" yaml:"target"`
	Unit     string  `json:"unit" yaml:"unit"`
	Progress float64 `json:"progress" yaml:"progress"`
}
