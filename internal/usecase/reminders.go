package usecase

import (
	"context"
	"time"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
)

// Reminders figures out which renewal reminders are due and records the
// ones that were delivered so they fire once per renewal date.
type Reminders struct {
	Sr  SubscriptionRepository
	Er  EventRepository
	Str SettingsRepository
}

// NewReminders creates the reminder service.
func NewReminders(sr SubscriptionRepository, er EventRepository, str SettingsRepository) *Reminders {
	return &Reminders{Sr: sr, Er: er, Str: str}
}

// DueReminder is one reminder ready to deliver.
type DueReminder struct {
	Subscription *entity.Subscription
	RenewalDate  time.Time
	DaysUntil    int
}

// Due lists reminders that should fire at now: reminder-enabled active or
// trial subscriptions whose renewal falls within the lead window (the
// record's own lead days, or the settings default when unset) and which
// have not already had a reminder_sent event for that renewal date.
func (r *Reminders) Due(ctx context.Context, now time.Time) ([]DueReminder, error) {
	subs, err := r.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := r.Str.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	events, err := r.Er.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	sent := map[string]bool{}
	for _, e := range events {
		if e.Type != entity.EventReminderSent {
			continue
		}
		decoded, err := e.DecodePayload()
		if err != nil {
			continue
		}
		p := decoded.(*entity.ReminderSentPayload)
		sent[e.SubscriptionID+"|"+p.RenewalDate] = true
	}

	var due []DueReminder
	for _, s := range subs {
		if !s.ReminderEnabled {
			continue
		}
		if s.Status != entity.StatusActive && s.Status != entity.StatusTrial {
			continue
		}
		lead := s.ReminderDays
		if lead <= 0 {
			lead = settings.DefaultReminderDays
		}
		d := recurrence.DaysBetween(now, s.NextRenewal)
		if d < 0 || d > lead {
			continue
		}
		renewal := recurrence.Day(s.NextRenewal)
		if sent[s.ID+"|"+renewal.Format("2006-01-02")] {
			continue
		}
		due = append(due, DueReminder{Subscription: s, RenewalDate: renewal, DaysUntil: d})
	}
	return due, nil
}

// MarkSent records delivery of a reminder so the same renewal date never
// fires again.
func (r *Reminders) MarkSent(ctx context.Context, subscriptionID string, renewalDate time.Time) error {
	if subscriptionID == "" {
		return ErrInvalidID
	}
	payload := entity.ReminderSentPayload{
		RenewalDate: recurrence.Day(renewalDate).Format("2006-01-02"),
	}
	e, err := entity.NewEvent(subscriptionID, entity.EventReminderSent, payload)
	if err != nil {
		return err
	}
	_, err = r.Er.AppendEvent(ctx, e)
	return err
}
