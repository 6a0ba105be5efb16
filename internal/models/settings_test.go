package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeSettings(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want Settings
	}{
		{"garbage", `nope`, Settings{Interval: 60, Enabled: false, DailyGoalML: 2000}},
		{"partial", `{"enabled":true}`, Settings{Interval: 60, Enabled: true, DailyGoalML: 2000}},
		{"clamped low", `{"interval":1,"dailyGoalMl":-5}`, Settings{Interval: 15, DailyGoalML: 1}},
		{"clamped high", `{"interval":9999}`, Settings{Interval: 480, DailyGoalML: 2000}},
		{"wrong type ignored", `{"interval":"soon","dailyGoalMl":2500}`, Settings{Interval: 60, DailyGoalML: 2500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, MergeSettings([]byte(tt.blob))); diff != "" {
				t.Errorf("MergeSettings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
