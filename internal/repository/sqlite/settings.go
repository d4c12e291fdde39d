package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// SettingsRepository backs the settings singleton with a single fixed row.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings returns the stored row, or the defaults when it does not
// exist yet.
func (r *SettingsRepository) GetSettings(ctx context.Context) (*entity.AppSettings, error) {
	var model SettingsModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", settingsRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settingsToEntity(&model), nil
}

func (r *SettingsRepository) SaveSettings(ctx context.Context, s *entity.AppSettings) (*entity.AppSettings, error) {
	if s == nil {
		return nil, fmt.Errorf("save settings: %w", usecase.ErrInvalidSettings)
	}
	model := settingsToModel(s)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settingsToEntity(model), nil
}
