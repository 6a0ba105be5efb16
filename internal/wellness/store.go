// Package wellness owns the in-memory wellness dataset and is the only code
// that reads or writes it through a storage.Provider.
//
// Every mutation builds the next dataset, persists it in full, and only then
// swaps it in. A failed write is logged and the mutation is dropped, so memory
// never holds state the provider rejected.
package wellness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/storage"
	"github.com/julianstephens/wellness/internal/utils"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidValue  = errors.New("value must be zero or greater")
	ErrInvalidTarget = errors.New("target must be greater than zero")
	ErrInvalidMood   = errors.New("mood label is required")
	ErrInvalidRating = fmt.Errorf("rating must be between %d and %d", constants.MinMoodRating, constants.MaxMoodRating)
	ErrInvalidName   = errors.New("name is required")
	ErrUnknownHabit  = errors.New("unknown habit")
	ErrNotFound      = errors.New("entry not found")
)

// Store is the single authority over a WellnessDataset
type Store struct {
	mu       sync.RWMutex
	provider storage.Provider
	now      func() time.Time
	loc      *time.Location
	newID    func() string

	data     models.Dataset
	settings models.Settings
	loading  bool
}

type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLocation sets the timezone that decides which calendar day is "today"
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDGenerator replaces the uuid-based id source
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns a store holding defaults. It stays in the loading state until Load.
func New(p storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: p,
		now:      time.Now,
		loc:      time.Local,
		newID:    func() string { return uuid.New().String() },
		data:     models.DefaultDataset(),
		settings: models.DefaultSettings(),
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted dataset and settings, merging each over its
// defaults. Read or parse failures fall back to defaults and are logged.
func (s *Store) Load(ctx context.Context) {
	data := s.readDataset(ctx)
	settings := s.readSettings(ctx)

	s.mu.Lock()
	s.data = data
	s.settings = settings
	s.loading = false
	s.mu.Unlock()
}

// Reload re-runs Load, picking up writes made by another process
func (s *Store) Reload(ctx context.Context) {
	s.Load(ctx)
}

func (s *Store) readDataset(ctx context.Context) models.Dataset {
	blob, err := s.provider.GetItem(ctx, constants.DataKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error("Failed to load wellness data", "key", constants.DataKey, "error", err)
		}
		return models.DefaultDataset()
	}

	ds, err := models.MergeOverDefaults([]byte(blob))
	if err != nil {
		logger.Error("Stored wellness data is malformed, using defaults", "key", constants.DataKey, "error", err)
		return models.DefaultDataset()
	}
	return ds
}

func (s *Store) readSettings(ctx context.Context) models.Settings {
	blob, err := s.provider.GetItem(ctx, constants.SettingsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error("Failed to load settings", "key", constants.SettingsKey, "error", err)
		}
		return models.DefaultSettings()
	}
	return models.MergeSettings([]byte(blob))
}

// Loading reports whether Load has not finished yet
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Data returns a copy of the current dataset
func (s *Store) Data() models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Location returns the timezone used for calendar days
func (s *Store) Location() *time.Location {
	return s.loc
}

// Today returns the current calendar day (YYYY-MM-DD) in the store's timezone
func (s *Store) Today() string {
	return utils.DayString(s.now(), s.loc)
}

// persist writes next under the data key. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, next models.Dataset) error {
	blob, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to serialize wellness data: %w", err)
	}
	if err := s.provider.SetItem(ctx, constants.DataKey, string(blob)); err != nil {
		return err
	}
	s.data = next
	return nil
}

// commit persists next and swallows failures. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next models.Dataset) {
	if err := s.persist(ctx, next); err != nil {
		logger.Error("Failed to save wellness data", "key", constants.DataKey, "op", op, "error", err)
	}
}

func (s *Store) timestamp() int64 {
	return s.now().UnixMilli()
}
