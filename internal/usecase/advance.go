package usecase

import (
	"context"
	"time"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
)

// AdvancedRenewal reports one subscription whose anchor date was rolled
// forward.
type AdvancedRenewal struct {
	Subscription *entity.Subscription
	From         time.Time
	To           time.Time
}

// AdvanceRenewals rolls every stale anchor date forward to its next
// occurrence on or after today. Paused and cancelled subscriptions are
// never touched. Each advanced record is persisted and gets a
// renewal_advanced event in the same operation; already-current records
// are left alone, so running this twice on the same day is a no-op.
func (s *Subscription) AdvanceRenewals(ctx context.Context, today time.Time) ([]AdvancedRenewal, error) {
	subs, err := s.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}

	var advanced []AdvancedRenewal
	for _, sub := range subs {
		if sub.Status == entity.StatusPaused || sub.Status == entity.StatusCancelled {
			continue
		}
		interval := recurrence.SubscriptionInterval(sub)
		from := recurrence.Day(sub.NextRenewal)
		to := recurrence.NextOnOrAfter(sub.NextRenewal, interval, today)
		if !to.After(from) {
			continue
		}

		next := sub.Clone()
		next.NextRenewal = to
		updated, err := s.Sr.UpdateSub(ctx, next)
		if err != nil {
			return advanced, err
		}
		payload := entity.RenewalAdvancedPayload{
			From: from.Format("2006-01-02"),
			To:   to.Format("2006-01-02"),
		}
		if err := s.logEvent(ctx, sub.ID, entity.EventRenewalAdvanced, payload); err != nil {
			return advanced, err
		}
		advanced = append(advanced, AdvancedRenewal{Subscription: updated, From: from, To: to})
	}
	return advanced, nil
}
