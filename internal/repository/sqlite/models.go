package sqlite

import (
	"encoding/json"
	"time"

	"subsqueeze/internal/entity"
)

// SubscriptionModel is the subscriptions table row.
type SubscriptionModel struct {
	ID              string    `gorm:"primaryKey"`
	Name            string    `gorm:"not null"`
	Amount          float64   `gorm:"not null"`
	Currency        string    `gorm:"not null"`
	Cadence         string    `gorm:"not null"`
	CustomDays      int       `gorm:"not null;default:0"`
	NextRenewal     time.Time `gorm:"not null;index"`
	Category        string    `gorm:"not null"`
	Status          string    `gorm:"not null;index"`
	ReminderEnabled bool      `gorm:"not null;default:false"`
	ReminderDays    int       `gorm:"not null;default:0"`
	Notes           string
	CancelURL       string
	SharedMembers   []entity.SharedMember `gorm:"serializer:json"`
	PaymentMethodID string                `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

func subToModel(s *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:              s.ID,
		Name:            s.Name,
		Amount:          s.Amount,
		Currency:        s.Currency,
		Cadence:         string(s.Cadence),
		CustomDays:      s.CustomDays,
		NextRenewal:     s.NextRenewal,
		Category:        string(s.Category),
		Status:          string(s.Status),
		ReminderEnabled: s.ReminderEnabled,
		ReminderDays:    s.ReminderDays,
		Notes:           s.Notes,
		CancelURL:       s.CancelURL,
		SharedMembers:   s.SharedMembers,
		PaymentMethodID: s.PaymentMethodID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func subToEntity(m *SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		ID:              m.ID,
		Name:            m.Name,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Cadence:         entity.Cadence(m.Cadence),
		CustomDays:      m.CustomDays,
		NextRenewal:     m.NextRenewal.UTC(),
		Category:        entity.Category(m.Category),
		Status:          entity.Status(m.Status),
		ReminderEnabled: m.ReminderEnabled,
		ReminderDays:    m.ReminderDays,
		Notes:           m.Notes,
		CancelURL:       m.CancelURL,
		SharedMembers:   m.SharedMembers,
		PaymentMethodID: m.PaymentMethodID,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

// EventModel is the events table row. Payload is the JSON payload text as
// appended; rows are never updated.
type EventModel struct {
	ID             string    `gorm:"primaryKey"`
	SubscriptionID string    `gorm:"not null;index"`
	Type           string    `gorm:"not null"`
	Payload        string    `gorm:"not null"`
	Timestamp      time.Time `gorm:"not null;index"`
}

func (EventModel) TableName() string { return "events" }

func eventToModel(e *entity.EventLog) *EventModel {
	return &EventModel{
		ID:             e.ID,
		SubscriptionID: e.SubscriptionID,
		Type:           string(e.Type),
		Payload:        string(e.Payload),
		Timestamp:      e.Timestamp,
	}
}

func eventToEntity(m *EventModel) *entity.EventLog {
	return &entity.EventLog{
		ID:             m.ID,
		SubscriptionID: m.SubscriptionID,
		Type:           entity.EventType(m.Type),
		Payload:        json.RawMessage(m.Payload),
		Timestamp:      m.Timestamp.UTC(),
	}
}

// UsageCheckModel is the usage_checks table row. The pair index backs the
// replace-on-conflict semantics.
type UsageCheckModel struct {
	ID             string    `gorm:"primaryKey"`
	SubscriptionID string    `gorm:"not null;uniqueIndex:idx_usage_sub_month"`
	Month          string    `gorm:"not null;uniqueIndex:idx_usage_sub_month"`
	Used           string    `gorm:"not null"`
	Timestamp      time.Time `gorm:"not null"`
}

func (UsageCheckModel) TableName() string { return "usage_checks" }

func checkToEntity(m *UsageCheckModel) *entity.UsageCheck {
	return &entity.UsageCheck{
		ID:             m.ID,
		SubscriptionID: m.SubscriptionID,
		Month:          m.Month,
		Used:           entity.UsageAnswer(m.Used),
		Timestamp:      m.Timestamp.UTC(),
	}
}

// PaymentMethodModel is the payment_methods table row.
type PaymentMethodModel struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Type     string `gorm:"not null"`
	LastFour string
	Color    string
}

func (PaymentMethodModel) TableName() string { return "payment_methods" }

func methodToModel(m *entity.PaymentMethod) *PaymentMethodModel {
	return &PaymentMethodModel{
		ID:       m.ID,
		Name:     m.Name,
		Type:     string(m.Type),
		LastFour: m.LastFour,
		Color:    m.Color,
	}
}

func methodToEntity(m *PaymentMethodModel) *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:       m.ID,
		Name:     m.Name,
		Type:     entity.PaymentMethodType(m.Type),
		LastFour: m.LastFour,
		Color:    m.Color,
	}
}

// SettingsModel is the single settings row, keyed by a fixed id.
type SettingsModel struct {
	ID                   uint `gorm:"primaryKey"`
	DefaultCurrency      string
	DefaultReminderDays  int
	IncludeTrialsInTotal bool
	MonthlyBudgetLimit   *float64
	BudgetAlertThreshold float64
	TrialWarningDays     int
}

func (SettingsModel) TableName() string { return "settings" }

const settingsRowID = 1

func settingsToModel(s *entity.AppSettings) *SettingsModel {
	return &SettingsModel{
		ID:                   settingsRowID,
		DefaultCurrency:      s.DefaultCurrency,
		DefaultReminderDays:  s.DefaultReminderDays,
		IncludeTrialsInTotal: s.IncludeTrialsInTotal,
		MonthlyBudgetLimit:   s.MonthlyBudgetLimit,
		BudgetAlertThreshold: s.BudgetAlertThreshold,
		TrialWarningDays:     s.TrialWarningDays,
	}
}

func settingsToEntity(m *SettingsModel) *entity.AppSettings {
	return &entity.AppSettings{
		DefaultCurrency:      m.DefaultCurrency,
		DefaultReminderDays:  m.DefaultReminderDays,
		IncludeTrialsInTotal: m.IncludeTrialsInTotal,
		MonthlyBudgetLimit:   m.MonthlyBudgetLimit,
		BudgetAlertThreshold: m.BudgetAlertThreshold,
		TrialWarningDays:     m.TrialWarningDays,
	}
}
