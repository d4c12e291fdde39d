package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// PaymentMethodRepository backs payment methods with the payment_methods
// table.
type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) ListPaymentMethods(ctx context.Context) ([]*entity.PaymentMethod, error) {
	var models []PaymentMethodModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	out := make([]*entity.PaymentMethod, 0, len(models))
	for i := range models {
		out = append(out, methodToEntity(&models[i]))
	}
	return out, nil
}

func (r *PaymentMethodRepository) GetPaymentMethodByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	var model PaymentMethodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("get payment method by id=%s: %w", id, err)
	}
	return methodToEntity(&model), nil
}

func (r *PaymentMethodRepository) SavePaymentMethod(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m == nil {
		return nil, fmt.Errorf("save payment method: %w", usecase.ErrInvalidPaymentMethod)
	}
	model := methodToModel(m)
	model.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("save payment method: %w", err)
	}
	return methodToEntity(model), nil
}

func (r *PaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m == nil || m.ID == "" {
		return nil, fmt.Errorf("update payment method: %w", usecase.ErrInvalidPaymentMethod)
	}
	model := methodToModel(m)
	res := r.db.WithContext(ctx).Model(&PaymentMethodModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":      model.Name,
			"type":      model.Type,
			"last_four": model.LastFour,
			"color":     model.Color,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update payment method: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrPaymentMethodNotFound
	}
	return methodToEntity(model), nil
}

func (r *PaymentMethodRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&PaymentMethodModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete payment method: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPaymentMethodNotFound
	}
	return nil
}
