package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeOverDefaults(t *testing.T) {
	tests := []struct {
		name       string
		blob       string
		wantMoods  int
		wantHabits int
		wantExtra  []string
	}{
		{name: "empty object", blob: `{}`, wantHabits: 4},
		{name: "empty habits override", blob: `{"habits":[]}`, wantHabits: 0},
		{name: "null keeps default", blob: `{"habits":null}`, wantHabits: 4},
		{name: "wrong shape keeps default", blob: `{"habits":{"id":"1"}}`, wantHabits: 4},
		{
			name:       "persisted moods",
			blob:       `{"moods":[{"id":"a","date":"2025-01-01","emoji":"😊","mood":"Happy","timestamp":1}]}`,
			wantMoods:  1,
			wantHabits: 4,
		},
		{
			name:       "unknown keys kept",
			blob:       `{"streakFreeze":true,"theme":"dark"}`,
			wantHabits: 4,
			wantExtra:  []string{"streakFreeze", "theme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := MergeOverDefaults([]byte(tt.blob))
			if err != nil {
				t.Fatalf("MergeOverDefaults() error = %v", err)
			}
			if len(ds.Moods) != tt.wantMoods {
				t.Errorf("moods = %d, want %d", len(ds.Moods), tt.wantMoods)
			}
			if len(ds.Habits) != tt.wantHabits {
				t.Errorf("habits = %d, want %d", len(ds.Habits), tt.wantHabits)
			}
			if ds.Moods == nil || ds.Hydration == nil || ds.Habits == nil || ds.HabitEntries == nil {
				t.Error("merged collections must never be nil")
			}
			for _, k := range tt.wantExtra {
				if _, ok := ds.Extra[k]; !ok {
					t.Errorf("extra key %q missing", k)
				}
			}
		})
	}
}

func TestMergeOverDefaultsRejectsNonObject(t *testing.T) {
	for _, blob := range []string{`[]`, `"text"`, `{broken`, ``} {
		ds, err := MergeOverDefaults([]byte(blob))
		if err == nil {
			t.Errorf("MergeOverDefaults(%q) expected error", blob)
		}
		if len(ds.Habits) != 4 {
			t.Errorf("MergeOverDefaults(%q) should still return defaults", blob)
		}
	}
}

func TestDatasetJSONRoundTrip(t *testing.T) {
	ds := DefaultDataset()
	ds.HabitEntries = []HabitEntry{{ID: "e1", HabitID: "1", Date: "2025-06-15", Completed: true, Value: 12.5, Timestamp: 1718441000000}}
	ds.Extra = map[string]json.RawMessage{"custom": json.RawMessage(`{"a":1}`)}

	blob, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(blob), `"habitId":"1"`) {
		t.Errorf("habit entry should serialize habitId, got %s", blob)
	}

	var back Dataset
	if err := json.Unmarshal(blob, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(ds, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalNilCollectionsAsEmptyArrays(t *testing.T) {
	blob, err := json.Marshal(Dataset{})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{KeyMoods, KeyHydration, KeyHabits, KeyHabitEntries} {
		if !strings.Contains(string(blob), `"`+key+`":[]`) {
			t.Errorf("expected %q as an empty array in %s", key, blob)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	ds := DefaultDataset()
	ds.Extra = map[string]json.RawMessage{"k": json.RawMessage(`1`)}
	c := ds.Clone()

	c.Habits[0].Name = "Changed"
	c.Extra["k"][0] = '2'

	if ds.Habits[0].Name != "Exercise" {
		t.Error("Clone shares the habits slice")
	}
	if string(ds.Extra["k"]) != "1" {
		t.Error("Clone shares extra payloads")
	}
}

func TestLookupMoodOption(t *testing.T) {
	opt, ok := LookupMoodOption("  anxious ")
	if !ok || opt.Emoji != "😰" {
		t.Errorf("LookupMoodOption(anxious) = %+v, %v", opt, ok)
	}
	if _, ok := LookupMoodOption("Elated"); ok {
		t.Error("free-form labels are not options")
	}
	if len(MoodOptions) != 8 {
		t.Errorf("expected 8 mood options, got %d", len(MoodOptions))
	}
}
