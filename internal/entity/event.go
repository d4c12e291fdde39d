package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType tags the payload shape carried by an EventLog entry.
type EventType string

const (
	EventCreated         EventType = "created"
	EventEdited          EventType = "edited"
	EventStatusChange    EventType = "status_change"
	EventPriceChange     EventType = "price_change"
	EventReminderSent    EventType = "reminder_sent"
	EventRenewalAdvanced EventType = "renewal_advanced"
)

// EventLog is an immutable audit entry. Entries are append-only; they are
// never mutated or deleted, and deleting a subscription leaves its events
// orphaned but retained.
type EventLog struct {
	ID             string          `json:"id"`
	SubscriptionID string          `json:"subscriptionId"`
	Type           EventType       `json:"type"`
	Payload        json.RawMessage `json:"payload"`
	Timestamp      time.Time       `json:"timestamp"`
}

// CreatedPayload accompanies EventCreated: a full snapshot of the record
// as it was created.
type CreatedPayload struct {
	Subscription Subscription `json:"subscription"`
}

// StatusChangePayload accompanies EventStatusChange.
type StatusChangePayload struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

// PriceChangePayload accompanies EventPriceChange.
type PriceChangePayload struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// EditedPayload accompanies EventEdited. Changes holds the partial-update
// object that was applied, keyed by field name.
type EditedPayload struct {
	Changes map[string]any `json:"changes"`
}

// RenewalAdvancedPayload accompanies EventRenewalAdvanced. Dates are
// ISO-8601 calendar days.
type RenewalAdvancedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReminderSentPayload accompanies EventReminderSent and records which
// renewal date the reminder was for.
type ReminderSentPayload struct {
	RenewalDate string `json:"renewalDate"`
}

// NewEvent builds an EventLog with the payload marshalled in. ID and
// Timestamp are assigned by the store on append.
func NewEvent(subscriptionID string, typ EventType, payload any) (*EventLog, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return &EventLog{
		SubscriptionID: subscriptionID,
		Type:           typ,
		Payload:        raw,
	}, nil
}

// DecodePayload unmarshals the payload into the concrete type matching the
// event's tag.
func (e *EventLog) DecodePayload() (any, error) {
	var dst any
	switch e.Type {
	case EventCreated:
		dst = &CreatedPayload{}
	case EventStatusChange:
		dst = &StatusChangePayload{}
	case EventPriceChange:
		dst = &PriceChangePayload{}
	case EventEdited:
		dst = &EditedPayload{}
	case EventRenewalAdvanced:
		dst = &RenewalAdvancedPayload{}
	case EventReminderSent:
		dst = &ReminderSentPayload{}
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return dst, nil
}
