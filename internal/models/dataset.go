package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/wellness/internal/constants"
)

// Top-level keys of the persisted dataset blob
const (
	KeyMoods        = "moods"
	KeyHydration    = "hydration"
	KeyHabits       = "habits"
	KeyHabitEntries = "habitEntries"
)

// Dataset is the root aggregate persisted as a single blob.
//
// Moods, Hydration and HabitEntries are kept most-recent-first. Habits keep
// insertion order. Unknown top-level keys found in a persisted blob are kept
// in Extra and written back untouched.
type Dataset struct {
	Moods        []MoodEntry      `json:"moods" yaml:"moods"`
	Hydration    []HydrationEntry `json:"hydration" yaml:"hydration"`
	Habits       []Habit          `json:"habits" yaml:"habits"`
	HabitEntries []HabitEntry     `json:"habitEntries" yaml:"habitEntries"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// DefaultHabits returns the seeded habit set
func DefaultHabits() []Habit {
	return []Habit{
		{ID: "1", Name: "Exercise", Icon: "🏃‍♂️", Color: "#FF6B6B", Target: 30, Unit: "minutes", CreatedAt: constants.DefaultHabitsCreatedAt},
		{ID: "2", Name: "Meditation", Icon: "🧘‍♀️", Color: "#4ECDC4", Target: 10, Unit: "minutes", CreatedAt: constants.DefaultHabitsCreatedAt},
		{ID: "3", Name: "Reading", Icon: "📚", Color: "#45B7D1", Target: 20, Unit: "minutes", CreatedAt: constants.DefaultHabitsCreatedAt},
		{ID: "4", Name: "Sleep", Icon: "😴", Color: "#96CEB4", Target: 8, Unit: "hours", CreatedAt: constants.DefaultHabitsCreatedAt},
	}
}

// DefaultDataset returns a fresh dataset with empty journals and the default habits
func DefaultDataset() Dataset {
	return Dataset{
		Moods:        []MoodEntry{},
		Hydration:    []HydrationEntry{},
		Habits:       DefaultHabits(),
		HabitEntries: []HabitEntry{},
	}
}

// Clone returns a deep copy so callers cannot mutate the store's slices
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Moods:        append([]MoodEntry{}, d.Moods...),
		Hydration:    append([]HydrationEntry{}, d.Hydration...),
		Habits:       append([]Habit{}, d.Habits...),
		HabitEntries: append([]HabitEntry{}, d.HabitEntries...),
	}
	if len(d.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = append(json.RawMessage{}, v...)
		}
	}
	return out
}

// MarshalJSON writes the four collections plus any preserved unknown keys
func (d Dataset) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 4+len(d.Extra))
	for k, v := range d.Extra {
		out[k] = v
	}
	out[KeyMoods] = nonNil(d.Moods)
	out[KeyHydration] = nonNil(d.Hydration)
	out[KeyHabits] = nonNil(d.Habits)
	out[KeyHabitEntries] = nonNil(d.HabitEntries)
	return json.Marshal(out)
}

// UnmarshalJSON is MergeOverDefaults applied to a blob
func (d *Dataset) UnmarshalJSON(data []byte) error {
	merged, err := MergeOverDefaults(data)
	if err != nil {
		return err
	}
	*d = merged
	return nil
}

// MergeOverDefaults reconciles a persisted blob with DefaultDataset, key by key.
//
// A key present with a well-formed array replaces the default, even when the
// array is empty. A key that is missing, null, or fails to decode keeps its
// default. Only a blob that is not a JSON object is an error.
func MergeOverDefaults(blob []byte) (Dataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return DefaultDataset(), fmt.Errorf("dataset is not a JSON object: %w", err)
	}
	return MergeRaw(raw), nil
}

// MergeRaw is MergeOverDefaults for an already split blob
func MergeRaw(raw map[string]json.RawMessage) Dataset {
	ds := DefaultDataset()
	mergeKey(raw, KeyMoods, &ds.Moods)
	mergeKey(raw, KeyHydration, &ds.Hydration)
	mergeKey(raw, KeyHabits, &ds.Habits)
	mergeKey(raw, KeyHabitEntries, &ds.HabitEntries)

	for k, v := range raw {
		switch k {
		case KeyMoods, KeyHydration, KeyHabits, KeyHabitEntries:
			continue
		}
		if ds.Extra == nil {
			ds.Extra = make(map[string]json.RawMessage)
		}
		ds.Extra[k] = v
	}
	return ds
}

func mergeKey[T any](raw map[string]json.RawMessage, key string, dst *[]T) {
	msg, ok := raw[key]
	if !ok || isNull(msg) {
		return
	}
	var decoded []T
	if err := json.Unmarshal(msg, &decoded); err != nil {
		return
	}
	if decoded == nil {
		decoded = []T{}
	}
	*dst = decoded
}

func isNull(msg json.RawMessage) bool {
	return len(msg) == 0 || string(msg) == "null"
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
