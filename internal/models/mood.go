package models

import (
	"strings"
	"time"
)

// MoodEntry is a single journal record of how the user felt on a calendar day
type MoodEntry struct {
	ID        string `json:"id" yaml:"id"`
	Date      string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Emoji     string `json:"emoji" yaml:"emoji"`
	Mood      string `json:"mood" yaml:"mood"`
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
	Rating    int    `json:"rating,omitempty" yaml:"rating,omitempty"` // 1-5, zero when unrated
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`               // epoch milliseconds
}

// Time returns the entry's creation time
func (m MoodEntry) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// MoodOption is one of the selectable moods offered when journaling
type MoodOption struct {
	Emoji string
	Label string
}

// MoodOptions lists the moods offered by the journal, in display order
var MoodOptions = []MoodOption{
	{Emoji: "😊", Label: "Happy"},
	{Emoji: "😔", Label: "Sad"},
	{Emoji: "😴", Label: "Tired"},
	{Emoji: "😤", Label: "Angry"},
	{Emoji: "😰", Label: "Anxious"},
	{Emoji: "😌", Label: "Calm"},
	{Emoji: "🤗", Label: "Grateful"},
	{Emoji: "😎", Label: "Confident"},
}

// LookupMoodOption finds an option by label, case-insensitively
func LookupMoodOption(label string) (MoodOption, bool) {
	for _, opt := range MoodOptions {
		if strings.EqualFold(opt.Label, strings.TrimSpace(label)) {
			return opt, true
		}
	}
	return MoodOption{}, false
}

// MoodStats summarises rated mood entries
type MoodStats struct {
	Count   int     `json:"count" yaml:"count"`
	Average float64 `json:"average" yaml:"average"`
	Trend   string  `json:"trend" yaml:"trend"`
}
