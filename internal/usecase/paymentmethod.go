package usecase

import (
	"context"
	"fmt"
	"strings"

	"subsqueeze/internal/entity"
)

// PaymentMethods manages the cards and accounts subscriptions can point
// at.
type PaymentMethods struct {
	Pr PaymentMethodRepository
	Sr SubscriptionRepository
}

// NewPaymentMethods creates the payment-method service.
func NewPaymentMethods(pr PaymentMethodRepository, sr SubscriptionRepository) *PaymentMethods {
	return &PaymentMethods{Pr: pr, Sr: sr}
}

// Add validates and saves a new payment method.
func (p *PaymentMethods) Add(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if err := validatePaymentMethod(m); err != nil {
		return nil, err
	}
	return p.Pr.SavePaymentMethod(ctx, m)
}

// Update replaces an existing payment method's fields.
func (p *PaymentMethods) Update(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if m == nil || m.ID == "" {
		return nil, ErrInvalidID
	}
	if err := validatePaymentMethod(m); err != nil {
		return nil, err
	}
	return p.Pr.UpdatePaymentMethod(ctx, m)
}

// List returns all payment methods.
func (p *PaymentMethods) List(ctx context.Context) ([]*entity.PaymentMethod, error) {
	return p.Pr.ListPaymentMethods(ctx)
}

// Remove deletes a payment method and, in the same logical operation,
// clears the reference on every subscription that used it. The
// subscriptions themselves survive.
func (p *PaymentMethods) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if err := p.Pr.DeletePaymentMethod(ctx, id); err != nil {
		return err
	}

	subs, err := p.Sr.ListSubs(ctx)
	if err != nil {
		return err
	}
	for _, s := range subs {
		if s.PaymentMethodID != id {
			continue
		}
		next := s.Clone()
		next.PaymentMethodID = ""
		if _, err := p.Sr.UpdateSub(ctx, next); err != nil {
			return fmt.Errorf("clear payment method on %s: %w", s.ID, err)
		}
	}
	return nil
}

func validatePaymentMethod(m *entity.PaymentMethod) error {
	if m == nil {
		return fmt.Errorf("%w: nil", ErrInvalidPaymentMethod)
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPaymentMethod)
	}
	if m.Type == "" {
		m.Type = entity.PaymentOther
	}
	if m.LastFour != "" && len(m.LastFour) != 4 {
		return fmt.Errorf("%w: last four must be 4 digits", ErrInvalidPaymentMethod)
	}
	return nil
}
