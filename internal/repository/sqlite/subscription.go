package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// SubRepository backs the subscription collection with the subscriptions
// table.
type SubRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubRepository(db *gorm.DB) *SubRepository {
	return &SubRepository{db: db, now: time.Now}
}

func (r *SubRepository) ListSubs(ctx context.Context) ([]*entity.Subscription, error) {
	var models []SubscriptionModel
	if err := r.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list subs: %w", err)
	}
	out := make([]*entity.Subscription, 0, len(models))
	for i := range models {
		out = append(out, subToEntity(&models[i]))
	}
	return out, nil
}

func (r *SubRepository) GetSubByID(ctx context.Context, id string) (*entity.Subscription, error) {
	var model SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get sub by id=%s: %w", id, err)
	}
	return subToEntity(&model), nil
}

func (r *SubRepository) SaveSub(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if sub == nil {
		return nil, fmt.Errorf("save sub: %w", usecase.ErrInvalidSubscription)
	}
	model := subToModel(sub)
	model.ID = uuid.NewString()
	now := r.now().UTC()
	model.CreatedAt = now
	model.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("save sub: %w", err)
	}
	return subToEntity(model), nil
}

func (r *SubRepository) UpdateSub(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if sub == nil || sub.ID == "" {
		return nil, fmt.Errorf("update sub: %w", usecase.ErrInvalidSubscription)
	}

	var existing SubscriptionModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", sub.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("update sub: %w", err)
	}

	model := subToModel(sub)
	model.CreatedAt = existing.CreatedAt
	model.UpdatedAt = r.now().UTC()

	// Save writes every column, so cleared fields are persisted too.
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return nil, fmt.Errorf("update sub: %w", err)
	}
	return subToEntity(model), nil
}

func (r *SubRepository) DeleteSub(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&SubscriptionModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete sub: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSubscriptionNotFound
	}
	return nil
}
