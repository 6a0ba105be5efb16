package moods

import (
	"strings"
	"testing"

	"github.com/julianstephens/wellness/internal/cli/clitest"
)

func TestMoodAddAndList(t *testing.T) {
	env := clitest.New(t)

	if err := (&MoodAddCmd{Label: "grateful", Rating: 4, Note: "sunny"}).Run(env.Context); err != nil {
		t.Fatalf("mood add failed: %v", err)
	}
	if !strings.Contains(env.Buf.String(), "🤗 grateful for 2025-06-15") {
		t.Errorf("unexpected add output: %q", env.Buf.String())
	}

	env.Buf.Reset()
	if err := (&MoodListCmd{Limit: 7}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	want := "2025-06-15  09:00  🤗 grateful  (4/5)  sunny  [id-1]\n"
	if env.Buf.String() != want {
		t.Errorf("list output = %q, want %q", env.Buf.String(), want)
	}
}

func TestMoodAddRejectsBadRating(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodAddCmd{Label: "Happy", Rating: 9}).Run(env.Context); err == nil {
		t.Fatal("expected rating error")
	}
	if got := len(env.Store.Data().Moods); got != 0 {
		t.Errorf("moods = %d, want 0", got)
	}
}

func TestMoodListEmpty(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodListCmd{Limit: 7}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), "No moods recorded yet.") {
		t.Errorf("output = %q", env.Buf.String())
	}
}

func TestMoodTodayAndDelete(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodTodayCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), "No mood recorded today.") {
		t.Errorf("output = %q", env.Buf.String())
	}

	if err := (&MoodAddCmd{Label: "Calm"}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	env.Buf.Reset()
	if err := (&MoodTodayCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), "😌 Calm") {
		t.Errorf("today output = %q", env.Buf.String())
	}

	if err := (&MoodDeleteCmd{ID: "missing"}).Run(env.Context); err == nil {
		t.Error("expected error deleting unknown id")
	}
	if err := (&MoodDeleteCmd{ID: "id-1"}).Run(env.Context); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := env.Store.TodayMood(); ok {
		t.Error("mood still present after delete")
	}
}

func TestMoodStats(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodStatsCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Buf.String(), "No rated moods yet.") {
		t.Errorf("output = %q", env.Buf.String())
	}

	// Oldest first; entries are prepended so the last added is the newest.
	for _, r := range []int{2, 2, 2, 4, 5, 5} {
		if err := (&MoodAddCmd{Label: "Happy", Rating: r}).Run(env.Context); err != nil {
			t.Fatal(err)
		}
	}
	env.Buf.Reset()
	if err := (&MoodStatsCmd{}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	out := env.Buf.String()
	for _, want := range []string{"Rated entries: 6", "Average:       3.3 / 5", "↑ improving"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestTrendSymbol(t *testing.T) {
	for trend, want := range map[string]string{
		"improving": "↑",
		"declining": "↓",
		"stable":    "→",
		"neutral":   "·",
	} {
		if got := TrendSymbol(trend); got != want {
			t.Errorf("TrendSymbol(%q) = %q, want %q", trend, got, want)
		}
	}
}

func TestMoodEdit(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodAddCmd{Label: "Sad", Rating: 2, Note: "rainy", Date: "2025-06-12"}).Run(env.Context); err != nil {
		t.Fatal(err)
	}

	label, note, rating := "Calm", "", 4
	env.Buf.Reset()
	if err := (&MoodEditCmd{ID: "id-1", Label: &label, Note: &note, Rating: &rating}).Run(env.Context); err != nil {
		t.Fatalf("mood edit failed: %v", err)
	}
	want := "✓ Updated 2025-06-12  09:00  😌 Calm  (4/5)  [id-1]\n"
	if env.Buf.String() != want {
		t.Errorf("edit output = %q, want %q", env.Buf.String(), want)
	}

	// Untouched flags keep their values
	emoji := "🌈"
	if err := (&MoodEditCmd{ID: "id-1", Emoji: &emoji}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	m, _ := env.Store.Mood("id-1")
	if m.Emoji != "🌈" || m.Mood != "Calm" || m.Rating != 4 || m.Date != "2025-06-12" {
		t.Errorf("entry after emoji edit = %+v", m)
	}
}

func TestMoodEditErrors(t *testing.T) {
	env := clitest.New(t)
	if err := (&MoodEditCmd{ID: "missing"}).Run(env.Context); err == nil {
		t.Error("expected error for unknown id")
	}

	if err := (&MoodAddCmd{Label: "Happy"}).Run(env.Context); err != nil {
		t.Fatal(err)
	}
	rating := 7
	if err := (&MoodEditCmd{ID: "id-1", Rating: &rating}).Run(env.Context); err == nil {
		t.Error("expected rating error")
	}
}
