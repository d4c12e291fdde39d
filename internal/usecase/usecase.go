package usecase

import (
	"context"
	"errors"

	"subsqueeze/internal/entity"
)

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -destination=usecase_mock.go -package=usecase subsqueeze/internal/usecase SubscriptionRepository,EventRepository,UsageRepository,PaymentMethodRepository,SettingsRepository

var (
	ErrInvalidSubscription   = errors.New("invalid subscription")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrInvalidUsageCheck     = errors.New("invalid usage check")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrInvalidSettings       = errors.New("invalid settings")
	ErrInvalidID             = errors.New("invalid id")
)

// SubscriptionRepository is collection-level access to subscription records.
// SaveSub assigns the generated id and both timestamps; UpdateSub bumps
// updated-at and reports not-found for unknown ids.
type SubscriptionRepository interface {
	ListSubs(ctx context.Context) ([]*entity.Subscription, error)
	GetSubByID(ctx context.Context, id string) (*entity.Subscription, error)
	SaveSub(ctx context.Context, s *entity.Subscription) (*entity.Subscription, error)
	UpdateSub(ctx context.Context, s *entity.Subscription) (*entity.Subscription, error)
	DeleteSub(ctx context.Context, id string) error
}

// EventRepository is the append-only audit log. AppendEvent assigns id and
// timestamp. Entries are never mutated or deleted.
type EventRepository interface {
	ListEvents(ctx context.Context) ([]*entity.EventLog, error)
	ListEventsBySub(ctx context.Context, subscriptionID string) ([]*entity.EventLog, error)
	AppendEvent(ctx context.Context, e *entity.EventLog) (*entity.EventLog, error)
}

// UsageRepository stores monthly usage self-reports. ReplaceCheck removes any
// existing check for the same (subscription, month) pair before inserting,
// so at most one current check exists per pair.
type UsageRepository interface {
	ListChecks(ctx context.Context) ([]*entity.UsageCheck, error)
	ListChecksBySub(ctx context.Context, subscriptionID string) ([]*entity.UsageCheck, error)
	ReplaceCheck(ctx context.Context, c *entity.UsageCheck) (*entity.UsageCheck, error)
}

// PaymentMethodRepository is CRUD for payment methods. The cascade that
// clears dangling subscription references lives in the usecase layer, not
// here.
type PaymentMethodRepository interface {
	ListPaymentMethods(ctx context.Context) ([]*entity.PaymentMethod, error)
	GetPaymentMethodByID(ctx context.Context, id string) (*entity.PaymentMethod, error)
	SavePaymentMethod(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, m *entity.PaymentMethod) (*entity.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error
}

// SettingsRepository holds the settings singleton. GetSettings materializes
// defaults when nothing has been stored yet.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*entity.AppSettings, error)
	SaveSettings(ctx context.Context, s *entity.AppSettings) (*entity.AppSettings, error)
}
