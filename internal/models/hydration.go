package models

import "time"

// HydrationEntry holds the running water total for one calendar day
type HydrationEntry struct {
	ID        string `json:"id" yaml:"id"`
	Date      string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Amount    int    `json:"amount" yaml:"amount"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // epoch milliseconds, refreshed on every addition
}

// Time returns the time of the last addition
func (h HydrationEntry) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// HydrationProgress reports today's intake against the daily goal
type HydrationProgress struct {
	Total     int     `json:"total" yaml:"total"`
	Goal      int     `json:"goal" yaml:"goal"`
	Percent   float64 `json:"percent" yaml:"percent"`
	Remaining int     `json:"remaining" yaml:"remaining"`
}
