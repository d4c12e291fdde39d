package jsonfile

import (
	"context"
	"fmt"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// SettingsRepository stores the settings singleton in settings.json.
type SettingsRepository struct {
	store *Store
}

func NewSettingsRepository(store *Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// GetSettings returns the stored record, or the defaults when nothing has
// been saved yet.
func (r *SettingsRepository) GetSettings(_ context.Context) (*entity.AppSettings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var stored *entity.AppSettings
	if err := r.store.read(settingsFile, &stored); err != nil {
		return nil, err
	}
	if stored == nil {
		return entity.DefaultSettings(), nil
	}
	return stored, nil
}

func (r *SettingsRepository) SaveSettings(_ context.Context, s *entity.AppSettings) (*entity.AppSettings, error) {
	if s == nil {
		return nil, fmt.Errorf("save settings: %w", usecase.ErrInvalidSettings)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.write(settingsFile, s); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	saved := *s
	return &saved, nil
}
