package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/julianstephens/wellness/internal/models"
)

type fakeSource struct {
	mu       sync.Mutex
	settings models.Settings
	progress models.HydrationProgress
	reloads  int
}

func (f *fakeSource) Reload(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
}

func (f *fakeSource) Settings() models.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeSource) HydrationProgress() models.HydrationProgress {
	return f.progress
}

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.texts)
}

func TestDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	on := models.Settings{Interval: 60, Enabled: true, DailyGoalML: 2000}
	off := on
	off.Enabled = false

	tests := []struct {
		name     string
		last     time.Time
		settings models.Settings
		want     bool
	}{
		{"disabled", time.Time{}, off, false},
		{"never fired", time.Time{}, on, true},
		{"interval not elapsed", now.Add(-59 * time.Minute), on, false},
		{"interval elapsed exactly", now.Add(-60 * time.Minute), on, true},
		{"interval long past", now.Add(-5 * time.Hour), on, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Due(now, tt.last, tt.settings); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	got := Message(models.HydrationProgress{Total: 750, Goal: 2000})
	want := "Time to drink some water! You've had 750 ml of 2000 ml today."
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestCheckRespectsInterval(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{
		settings: models.Settings{Interval: 30, Enabled: true, DailyGoalML: 2000},
		progress: models.HydrationProgress{Total: 500, Goal: 2000},
	}
	n := &recordingNotifier{}
	r := NewRunner(src, n, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	if !r.Check(ctx) {
		t.Fatal("first check should fire")
	}
	now = now.Add(29 * time.Minute)
	if r.Check(ctx) {
		t.Error("check before the interval should not fire")
	}
	now = now.Add(time.Minute)
	if !r.Check(ctx) {
		t.Error("check after the interval should fire")
	}
	if n.count() != 2 {
		t.Errorf("notifier called %d times, want 2", n.count())
	}
}

func TestCheckFailedDeliveryWaitsForInterval(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{settings: models.Settings{Interval: 15, Enabled: true, DailyGoalML: 2000}}
	n := &recordingNotifier{err: errors.New("tray gone")}
	r := NewRunner(src, n, WithClock(func() time.Time { return now }))

	if r.Check(context.Background()) {
		t.Error("failed delivery should report false")
	}
	now = now.Add(time.Minute)
	r.Check(context.Background())
	if n.count() != 1 {
		t.Errorf("notifier called %d times, want 1", n.count())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{settings: models.Settings{Interval: 15, Enabled: true, DailyGoalML: 2000}}
	n := &recordingNotifier{}
	r := NewRunner(src, n, WithTick(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for n.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("reminder never fired")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	src.mu.Lock()
	defer src.mu.Unlock()
	if src.reloads == 0 {
		t.Error("Run should reload settings on each tick")
	}
}
