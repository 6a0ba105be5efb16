package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDayStringUsesLocation(t *testing.T) {
	// 23:30 UTC is already the next day at UTC+2
	instant := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	if got := DayString(instant, time.UTC); got != "2025-03-09" {
		t.Errorf("DayString(UTC) = %q, want 2025-03-09", got)
	}
	if got := DayString(instant, plusTwo); got != "2025-03-10" {
		t.Errorf("DayString(UTC+2) = %q, want 2025-03-10", got)
	}
}

func TestPreviousDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-01", "2025-02-28"},
		{"2024-03-01", "2024-02-29"},
		{"2025-01-01", "2024-12-31"},
	}
	for _, tt := range tests {
		got, err := PreviousDay(tt.in)
		if err != nil {
			t.Fatalf("PreviousDay(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("PreviousDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := PreviousDay("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2025-02-28"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"2025-02-30", "25-02-01", "", "2025/02/01"} {
		if err := ValidateDate(bad); err == nil {
			t.Errorf("ValidateDate(%q) expected error", bad)
		}
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	got, err := ParseDateInLocation("2025-06-15", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Location() != loc || got.Day() != 15 {
		t.Errorf("ParseDateInLocation() = %v, want midnight 2025-06-15 in UTC-5", got)
	}
}
