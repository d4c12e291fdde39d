package entity

import "time"

// Status of a subscription. Transitions are user-driven; nothing in the
// system cancels a subscription automatically.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrial     Status = "trial"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a raw string onto a Status, falling back to
// StatusActive for anything unrecognized.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusActive, StatusTrial, StatusPaused, StatusCancelled:
		return Status(s)
	}
	return StatusActive
}

// Cadence is the repeat pattern of a subscription's billing.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"
	CadenceCustom  Cadence = "custom"
)

// ParseCadence maps a raw string onto a Cadence, falling back to
// CadenceMonthly for anything unrecognized.
func ParseCadence(s string) Cadence {
	switch Cadence(s) {
	case CadenceWeekly, CadenceMonthly, CadenceYearly, CadenceCustom:
		return Cadence(s)
	}
	return CadenceMonthly
}

// Category buckets subscriptions for display and reporting.
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategoryUtilities Category = "utilities"
	CategorySoftware  Category = "software"
	CategoryFitness   Category = "fitness"
	CategoryOther     Category = "other"
)

// ParseCategory maps a raw string onto a Category, falling back to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryStreaming, CategoryUtilities, CategorySoftware, CategoryFitness, CategoryOther:
		return Category(s)
	}
	return CategoryOther
}

// SharedMember is a person a subscription's cost is split with. Share is
// an optional explicit percentage; nil means an even split.
type SharedMember struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Share *float64 `json:"share,omitempty"`
}

// Subscription is a recurring-payment record.
type Subscription struct {
	// ID is an opaque unique identifier (UUID).
	ID string `json:"id"`
	// Name of the service.
	Name string `json:"name"`
	// Amount charged per billing cycle. Always > 0 for validated records.
	Amount float64 `json:"amount"`
	// Currency is an ISO-4217-like code. Amounts are never converted
	// across currencies, only bucketed by this code.
	Currency string `json:"currency"`
	// Cadence of billing; CustomDays applies only when Cadence is custom.
	Cadence    Cadence `json:"cadence"`
	CustomDays int     `json:"customDays,omitempty"`
	// NextRenewal is the anchor date of the renewal sequence, at
	// calendar-day granularity (UTC midnight).
	NextRenewal time.Time `json:"nextRenewalDate"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	// ReminderEnabled turns on renewal reminders, ReminderDays is the
	// lead time in days (0 means use the settings default).
	ReminderEnabled bool   `json:"reminderEnabled"`
	ReminderDays    int    `json:"reminderDaysBefore"`
	Notes           string `json:"notes,omitempty"`
	CancelURL       string `json:"cancelUrl,omitempty"`
	// SharedMembers is the ordered list of people the cost is split with.
	SharedMembers []SharedMember `json:"sharedMembers,omitempty"`
	// PaymentMethodID is a weak reference to a PaymentMethod; cleared
	// when the referenced method is deleted.
	PaymentMethodID string    `json:"paymentMethodId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Clone returns a deep copy, so callers can mutate without aliasing the
// stored record.
func (s *Subscription) Clone() *Subscription {
	cp := *s
	if s.SharedMembers != nil {
		cp.SharedMembers = make([]SharedMember, len(s.SharedMembers))
		copy(cp.SharedMembers, s.SharedMembers)
		for i, m := range s.SharedMembers {
			if m.Share != nil {
				v := *m.Share
				cp.SharedMembers[i].Share = &v
			}
		}
	}
	return &cp
}
