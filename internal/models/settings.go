package models

import (
	"encoding/json"

	"github.com/julianstephens/wellness/internal/constants"
)

// Settings holds hydration reminder preferences
type Settings struct {
	Interval    int  `json:"interval" yaml:"interval"`       // reminder interval in minutes
	Enabled     bool `json:"enabled" yaml:"enabled"`         // whether reminders fire
	DailyGoalML int  `json:"dailyGoalMl" yaml:"dailyGoalMl"` // daily hydration goal in ml
}

// DefaultSettings returns the settings used before anything is saved
func DefaultSettings() Settings {
	return Settings{
		Interval:    constants.DefaultReminderIntervalMin,
		Enabled:     constants.DefaultRemindersEnabled,
		DailyGoalML: constants.DefaultDailyGoalML,
	}
}

// Normalize clamps the interval to the supported range and keeps the goal positive
func (s Settings) Normalize() Settings {
	s.Interval = max(constants.MinReminderIntervalMin, min(constants.MaxReminderIntervalMin, s.Interval))
	if s.DailyGoalML < 1 {
		s.DailyGoalML = 1
	}
	return s
}

// MergeSettings decodes persisted settings over the defaults, field by field
func MergeSettings(blob []byte) Settings {
	out := DefaultSettings()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return out
	}
	decodeField(raw, "interval", &out.Interval)
	decodeField(raw, "enabled", &out.Enabled)
	decodeField(raw, "dailyGoalMl", &out.DailyGoalML)
	return out.Normalize()
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	msg, ok := raw[key]
	if !ok || isNull(msg) {
		return
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return
	}
	*dst = v
}
