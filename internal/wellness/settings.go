package wellness

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/logger"
	"github.com/julianstephens/wellness/internal/models"
	"github.com/julianstephens/wellness/internal/storage"
)

// Settings returns the current reminder and goal settings
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings applies fn to a copy of the settings, normalises the result,
// and persists it. A failed write leaves the previous settings in place.
func (s *Store) UpdateSettings(ctx context.Context, fn func(*models.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	fn(&next)
	next = next.Normalize()

	blob, err := json.Marshal(next)
	if err == nil {
		err = s.provider.SetItem(ctx, constants.SettingsKey, string(blob))
	}
	if err != nil {
		logger.Error("Failed to save settings", "key", constants.SettingsKey, "error", err)
		return
	}
	s.settings = next
}

// OnboardingCompleted reports whether first-run content was already confirmed.
// Read failures count as not completed.
func (s *Store) OnboardingCompleted(ctx context.Context) bool {
	v, err := s.provider.GetItem(ctx, constants.OnboardingKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read onboarding flag", "key", constants.OnboardingKey, "error", err)
		}
		return false
	}
	return v == "true"
}

// CompleteOnboarding records that first-run content has been shown
func (s *Store) CompleteOnboarding(ctx context.Context) {
	if err := s.provider.SetItem(ctx, constants.OnboardingKey, "true"); err != nil {
		logger.Error("Failed to save onboarding flag", "key", constants.OnboardingKey, "error", err)
	}
}
