package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
)

// Subscription coordinates subscription CRUD via the repositories. Every
// mutation appends exactly one audit event in the same logical operation.
type Subscription struct {
	Sr SubscriptionRepository
	Er EventRepository
}

// NewSubscription creates the subscription service with its repositories.
func NewSubscription(sr SubscriptionRepository, er EventRepository) *Subscription {
	return &Subscription{Sr: sr, Er: er}
}

// SubscriptionPatch is a partial update; nil fields are left untouched.
type SubscriptionPatch struct {
	Name            *string
	Amount          *float64
	Currency        *string
	Cadence         *entity.Cadence
	CustomDays      *int
	NextRenewal     *time.Time
	Category        *entity.Category
	Status          *entity.Status
	ReminderEnabled *bool
	ReminderDays    *int
	Notes           *string
	CancelURL       *string
	SharedMembers   *[]entity.SharedMember
	PaymentMethodID *string
}

// apply mutates s in place and returns the changed fields keyed by name,
// for the edited-event payload.
func (p SubscriptionPatch) apply(s *entity.Subscription) map[string]any {
	changes := map[string]any{}
	if p.Name != nil && *p.Name != s.Name {
		s.Name = *p.Name
		changes["name"] = s.Name
	}
	if p.Amount != nil && *p.Amount != s.Amount {
		s.Amount = *p.Amount
		changes["amount"] = s.Amount
	}
	if p.Currency != nil && *p.Currency != s.Currency {
		s.Currency = *p.Currency
		changes["currency"] = s.Currency
	}
	if p.Cadence != nil && *p.Cadence != s.Cadence {
		s.Cadence = *p.Cadence
		changes["cadence"] = s.Cadence
	}
	if p.CustomDays != nil && *p.CustomDays != s.CustomDays {
		s.CustomDays = *p.CustomDays
		changes["customDays"] = s.CustomDays
	}
	if p.NextRenewal != nil && !recurrence.Day(*p.NextRenewal).Equal(s.NextRenewal) {
		s.NextRenewal = recurrence.Day(*p.NextRenewal)
		changes["nextRenewalDate"] = s.NextRenewal.Format("2006-01-02")
	}
	if p.Category != nil && *p.Category != s.Category {
		s.Category = *p.Category
		changes["category"] = s.Category
	}
	if p.Status != nil && *p.Status != s.Status {
		s.Status = *p.Status
		changes["status"] = s.Status
	}
	if p.ReminderEnabled != nil && *p.ReminderEnabled != s.ReminderEnabled {
		s.ReminderEnabled = *p.ReminderEnabled
		changes["reminderEnabled"] = s.ReminderEnabled
	}
	if p.ReminderDays != nil && *p.ReminderDays != s.ReminderDays {
		s.ReminderDays = *p.ReminderDays
		changes["reminderDaysBefore"] = s.ReminderDays
	}
	if p.Notes != nil && *p.Notes != s.Notes {
		s.Notes = *p.Notes
		changes["notes"] = s.Notes
	}
	if p.CancelURL != nil && *p.CancelURL != s.CancelURL {
		s.CancelURL = *p.CancelURL
		changes["cancelUrl"] = s.CancelURL
	}
	if p.SharedMembers != nil {
		s.SharedMembers = *p.SharedMembers
		changes["sharedMembers"] = s.SharedMembers
	}
	if p.PaymentMethodID != nil && *p.PaymentMethodID != s.PaymentMethodID {
		s.PaymentMethodID = *p.PaymentMethodID
		changes["paymentMethodId"] = s.PaymentMethodID
	}
	return changes
}

// Register validates/normalizes and saves a new subscription, appending
// its created event.
func (s *Subscription) Register(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if err := validateAndNormalize(sub); err != nil {
		return nil, err
	}
	created, err := s.Sr.SaveSub(ctx, sub)
	if err != nil {
		return nil, err
	}
	if err := s.logEvent(ctx, created.ID, entity.EventCreated, entity.CreatedPayload{Subscription: *created}); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update to an existing subscription. Exactly one
// event is appended per effective update: a status change wins over a
// price change, which wins over a generic edit. An empty patch is a no-op.
func (s *Subscription) Update(ctx context.Context, id string, patch SubscriptionPatch) (*entity.Subscription, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	existing, err := s.Sr.GetSubByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := existing.Clone()
	changes := patch.apply(next)
	if len(changes) == 0 {
		return existing, nil
	}
	if err := validateAndNormalize(next); err != nil {
		return nil, err
	}

	updated, err := s.Sr.UpdateSub(ctx, next)
	if err != nil {
		return nil, err
	}

	var (
		typ     entity.EventType
		payload any
	)
	switch {
	case next.Status != existing.Status:
		typ = entity.EventStatusChange
		payload = entity.StatusChangePayload{From: existing.Status, To: next.Status}
	case next.Amount != existing.Amount:
		typ = entity.EventPriceChange
		payload = entity.PriceChangePayload{From: existing.Amount, To: next.Amount}
	default:
		typ = entity.EventEdited
		payload = entity.EditedPayload{Changes: changes}
	}
	if err := s.logEvent(ctx, id, typ, payload); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a subscription and returns the previously stored record.
// Its audit events are left in place, orphaned.
func (s *Subscription) Delete(ctx context.Context, id string) (*entity.Subscription, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	existing, err := s.Sr.GetSubByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Sr.DeleteSub(ctx, id); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get fetches a subscription by id.
func (s *Subscription) Get(ctx context.Context, id string) (*entity.Subscription, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	return s.Sr.GetSubByID(ctx, id)
}

// List returns the whole collection.
func (s *Subscription) List(ctx context.Context) ([]*entity.Subscription, error) {
	return s.Sr.ListSubs(ctx)
}

// Events returns the audit trail for one subscription.
func (s *Subscription) Events(ctx context.Context, id string) ([]*entity.EventLog, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	return s.Er.ListEventsBySub(ctx, id)
}

func (s *Subscription) logEvent(ctx context.Context, subID string, typ entity.EventType, payload any) error {
	e, err := entity.NewEvent(subID, typ, payload)
	if err != nil {
		return err
	}
	if _, err := s.Er.AppendEvent(ctx, e); err != nil {
		return fmt.Errorf("append %s event: %w", typ, err)
	}
	return nil
}

// validateAndNormalize enforces the data-entry rules and truncates the
// renewal date to its calendar day.
func validateAndNormalize(sub *entity.Subscription) error {
	if sub == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSubscription)
	}
	sub.Name = strings.TrimSpace(sub.Name)
	if sub.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSubscription)
	}
	if sub.Amount <= 0 {
		return fmt.Errorf("%w: amount must be > 0", ErrInvalidSubscription)
	}
	sub.Currency = strings.ToUpper(strings.TrimSpace(sub.Currency))
	if sub.Currency == "" {
		return fmt.Errorf("%w: empty currency", ErrInvalidSubscription)
	}
	if sub.Cadence == "" {
		sub.Cadence = entity.CadenceMonthly
	}
	if sub.Cadence == entity.CadenceCustom && sub.CustomDays <= 0 {
		return fmt.Errorf("%w: custom cadence requires custom days > 0", ErrInvalidSubscription)
	}
	if sub.NextRenewal.IsZero() {
		return fmt.Errorf("%w: missing next renewal date", ErrInvalidSubscription)
	}
	sub.NextRenewal = recurrence.Day(sub.NextRenewal)
	if sub.Category == "" {
		sub.Category = entity.CategoryOther
	}
	if sub.Status == "" {
		sub.Status = entity.StatusActive
	}
	if sub.ReminderDays < 0 {
		return fmt.Errorf("%w: reminder lead days must be >= 0", ErrInvalidSubscription)
	}
	for _, m := range sub.SharedMembers {
		if m.Share != nil && (*m.Share <= 0 || *m.Share > 100) {
			return fmt.Errorf("%w: share percent out of range", ErrInvalidSubscription)
		}
	}
	return nil
}
