package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// UsageRepository backs the monthly self-reports with the usage_checks
// table.
type UsageRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db, now: time.Now}
}

func (r *UsageRepository) ListChecks(ctx context.Context) ([]*entity.UsageCheck, error) {
	var models []UsageCheckModel
	if err := r.db.WithContext(ctx).Order("month").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	return checksToEntities(models), nil
}

func (r *UsageRepository) ListChecksBySub(ctx context.Context, subscriptionID string) ([]*entity.UsageCheck, error) {
	var models []UsageCheckModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("month").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list checks by sub=%s: %w", subscriptionID, err)
	}
	return checksToEntities(models), nil
}

// ReplaceCheck swaps the stored row for the (subscription, month) pair in
// one transaction.
func (r *UsageRepository) ReplaceCheck(ctx context.Context, c *entity.UsageCheck) (*entity.UsageCheck, error) {
	if c == nil {
		return nil, fmt.Errorf("replace check: %w", usecase.ErrInvalidUsageCheck)
	}
	model := &UsageCheckModel{
		ID:             uuid.NewString(),
		SubscriptionID: c.SubscriptionID,
		Month:          c.Month,
		Used:           string(c.Used),
		Timestamp:      r.now().UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("subscription_id = ? AND month = ?", c.SubscriptionID, c.Month).
			Delete(&UsageCheckModel{}).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return nil, fmt.Errorf("replace check: %w", err)
	}
	return checkToEntity(model), nil
}

func checksToEntities(models []UsageCheckModel) []*entity.UsageCheck {
	out := make([]*entity.UsageCheck, 0, len(models))
	for i := range models {
		out = append(out, checkToEntity(&models[i]))
	}
	return out
}
