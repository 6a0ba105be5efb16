package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wellness/internal/cli"
	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	fn   func(*cli.Context) error
	// warnOnly checks never fail the run
	warnOnly bool
	// needsDB checks are skipped when storage is unreachable
	needsDB bool
}

var checks = []check{
	{name: "Schema version", fn: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", fn: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", fn: checkBackupsPresent, warnOnly: true},
	{name: "Latest backup integrity", fn: checkLatestBackup},
	{name: "Wellness data", fn: checkDataset, needsDB: true},
	{name: "Settings", fn: checkSettings, needsDB: true},
	{name: "Clock/timezone", fn: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Printf("Today is %s (%s)\n\n", ctx.Store.Today(), ctx.Store.Location())

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.fn(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if p, ok := ctx.Provider.(storage.Pinger); ok {
		if err := p.Ping(ctx.Ctx); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current < st.Latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'wellness migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'wellness backup create'")
	}
	return nil
}

func checkLatestBackup(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) == 0 {
		return nil
	}
	if _, err := mgr.VerifyBackup(backups[0].Path); err != nil {
		return fmt.Errorf("%s: %w", backups[0].Path, err)
	}
	return nil
}

// checkDataset parses the stored blob strictly and looks for records the
// store itself would never write.
func checkDataset(ctx *cli.Context) error {
	blob, err := ctx.Provider.GetItem(ctx.Ctx, constants.DataKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", constants.DataKey, err)
	}
	ds, err := models.MergeOverDefaults([]byte(blob))
	if err != nil {
		return fmt.Errorf("stored data is malformed (defaults are used instead): %w", err)
	}
	return ValidateDataset(ds)
}

// ValidateDataset reports the first integrity problem found in ds
func ValidateDataset(ds models.Dataset) error {
	ids := make(map[string]string)
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("duplicate id %s (%s and %s)", id, prev, kind)
		}
		ids[id] = kind
		return nil
	}

	for _, m := range ds.Moods {
		if err := claim("mood", m.ID); err != nil {
			return err
		}
		if err := utils.ValidateDate(m.Date); err != nil {
			return fmt.Errorf("mood %s: %w", m.ID, err)
		}
		if m.Rating != 0 && (m.Rating < constants.MinMoodRating || m.Rating > constants.MaxMoodRating) {
			return fmt.Errorf("mood %s: rating %d out of range", m.ID, m.Rating)
		}
	}

	days := make(map[string]bool)
	for _, h := range ds.Hydration {
		if err := claim("hydration", h.ID); err != nil {
			return err
		}
		if err := utils.ValidateDate(h.Date); err != nil {
			return fmt.Errorf("hydration %s: %w", h.ID, err)
		}
		if days[h.Date] {
			return fmt.Errorf("more than one hydration entry for %s", h.Date)
		}
		days[h.Date] = true
	}

	habits := make(map[string]bool)
	for _, h := range ds.Habits {
		if err := claim("habit", h.ID); err != nil {
			return err
		}
		if h.Target <= 0 {
			return fmt.Errorf("habit %s: target must be greater than zero", h.ID)
		}
		habits[h.ID] = true
	}

	seen := make(map[string]bool)
	for _, e := range ds.HabitEntries {
		if err := claim("habit entry", e.ID); err != nil {
			return err
		}
		if err := utils.ValidateDate(e.Date); err != nil {
			return fmt.Errorf("habit entry %s: %w", e.ID, err)
		}
		if !habits[e.HabitID] {
			return fmt.Errorf("habit entry %s references unknown habit %s", e.ID, e.HabitID)
		}
		key := e.HabitID + "|" + e.Date
		if seen[key] {
			return fmt.Errorf("more than one entry for habit %s on %s", e.HabitID, e.Date)
		}
		seen[key] = true
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	blob, err := ctx.Provider.GetItem(ctx.Ctx, constants.SettingsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", constants.SettingsKey, err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return fmt.Errorf("stored settings are malformed (defaults are used instead): %w", err)
	}
	if s := models.MergeSettings([]byte(blob)); s.Interval != intField(raw, "interval", s.Interval) {
		return fmt.Errorf("reminder interval is outside %d-%d minutes and is clamped to %d",
			constants.MinReminderIntervalMin, constants.MaxReminderIntervalMin, s.Interval)
	}
	return nil
}

func intField(raw map[string]json.RawMessage, key string, fallback int) int {
	var v int
	if msg, ok := raw[key]; !ok || json.Unmarshal(msg, &v) != nil {
		return fallback
	}
	return v
}

func checkClockTimezone(_ *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
