// Package reminder runs the hydration reminder loop.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/notifier"
)

// Source is the slice of the wellness store the loop reads
type Source interface {
	Reload(ctx context.Context)
	Settings() models.Settings
	HydrationProgress() models.HydrationProgress
}

// Due reports whether a reminder should fire. A zero last means none has fired yet.
func Due(now, last time.Time, s models.Settings) bool {
	if !s.Enabled {
		return false
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= time.Duration(s.Interval)*time.Minute
}

// Message is the reminder text for today's progress
func Message(p models.HydrationProgress) string {
	return fmt.Sprintf("Time to drink some water! You've had %d ml of %d ml today.", p.Total, p.Goal)
}

type Runner struct {
	source   Source
	notifier notifier.Notifier
	now      func() time.Time
	tick     time.Duration
	last     time.Time
}

type Option func(*Runner)

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithTick changes how often settings are checked
func WithTick(d time.Duration) Option {
	return func(r *Runner) { r.tick = d }
}

func NewRunner(src Source, n notifier.Notifier, opts ...Option) *Runner {
	r := &Runner{
		source:   src,
		notifier: n,
		now:      time.Now,
		tick:     constants.ReminderTickInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks once per tick until ctx is done. Settings are reloaded on every
// tick so changes made by other processes apply without a restart.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	logger.Info("Reminder loop started", "tick", r.tick)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder loop stopped")
			return nil
		case <-ticker.C:
			r.source.Reload(ctx)
			r.Check(ctx)
		}
	}
}

// Check fires a reminder when one is due and reports whether it did
func (r *Runner) Check(ctx context.Context) bool {
	now := r.now()
	settings := r.source.Settings()
	if !Due(now, r.last, settings) {
		return false
	}

	// The interval restarts even when delivery fails
	r.last = now
	text := Message(r.source.HydrationProgress())
	if err := r.notifier.Notify(ctx, text); err != nil {
		logger.Warn("Failed to deliver hydration reminder", "error", err)
		return false
	}
	logger.Debug("Hydration reminder sent", "interval", settings.Interval)
	return true
}
