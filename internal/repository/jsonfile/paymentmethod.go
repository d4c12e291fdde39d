package jsonfile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// PaymentMethodRepository stores payment methods in payment_methods.json.
type PaymentMethodRepository struct {
	store *Store
}

func NewPaymentMethodRepository(store *Store) *PaymentMethodRepository {
	return &PaymentMethodRepository{store: store}
}

func (r *PaymentMethodRepository) ListPaymentMethods(_ context.Context) ([]*entity.PaymentMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *PaymentMethodRepository) GetPaymentMethodByID(_ context.Context, id string) (*entity.PaymentMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	methods, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, usecase.ErrPaymentMethodNotFound
}

func (r *PaymentMethodRepository) SavePaymentMethod(_ context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m == nil {
		return nil, fmt.Errorf("save payment method: %w", usecase.ErrInvalidPaymentMethod)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	methods, err := r.load()
	if err != nil {
		return nil, err
	}

	saved := *m
	saved.ID = uuid.NewString()
	methods = append(methods, &saved)
	if err := r.store.write(paymentMethodsFile, methods); err != nil {
		return nil, fmt.Errorf("save payment method: %w", err)
	}
	return &saved, nil
}

func (r *PaymentMethodRepository) UpdatePaymentMethod(_ context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m == nil || m.ID == "" {
		return nil, fmt.Errorf("update payment method: %w", usecase.ErrInvalidPaymentMethod)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	methods, err := r.load()
	if err != nil {
		return nil, err
	}
	for i, existing := range methods {
		if existing.ID != m.ID {
			continue
		}
		saved := *m
		methods[i] = &saved
		if err := r.store.write(paymentMethodsFile, methods); err != nil {
			return nil, fmt.Errorf("update payment method: %w", err)
		}
		return &saved, nil
	}
	return nil, usecase.ErrPaymentMethodNotFound
}

func (r *PaymentMethodRepository) DeletePaymentMethod(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	methods, err := r.load()
	if err != nil {
		return err
	}
	for i, m := range methods {
		if m.ID != id {
			continue
		}
		methods = append(methods[:i], methods[i+1:]...)
		if err := r.store.write(paymentMethodsFile, methods); err != nil {
			return fmt.Errorf("delete payment method: %w", err)
		}
		return nil
	}
	return usecase.ErrPaymentMethodNotFound
}

func (r *PaymentMethodRepository) load() ([]*entity.PaymentMethod, error) {
	var methods []*entity.PaymentMethod
	if err := r.store.read(paymentMethodsFile, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}
