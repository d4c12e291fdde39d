package usecase

import (
	"context"
	"fmt"
	"time"

	"subsqueeze/internal/entity"
)

// monthLayout is the calendar-month key format for usage checks.
const monthLayout = "2006-01"

// Usage records and queries monthly self-reports.
type Usage struct {
	Ur UsageRepository
	Sr SubscriptionRepository
}

// NewUsage creates the usage service with its repositories.
func NewUsage(ur UsageRepository, sr SubscriptionRepository) *Usage {
	return &Usage{Ur: ur, Sr: sr}
}

// Record saves a self-report for (subscription, month), replacing any
// existing check for that pair.
func (u *Usage) Record(ctx context.Context, subscriptionID, month string, used entity.UsageAnswer) (*entity.UsageCheck, error) {
	if subscriptionID == "" {
		return nil, ErrInvalidID
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidUsageCheck)
	}
	if !entity.ValidUsageAnswer(string(used)) {
		return nil, fmt.Errorf("%w: answer must be yes, no or skip", ErrInvalidUsageCheck)
	}
	if _, err := u.Sr.GetSubByID(ctx, subscriptionID); err != nil {
		return nil, err
	}
	return u.Ur.ReplaceCheck(ctx, &entity.UsageCheck{
		SubscriptionID: subscriptionID,
		Month:          month,
		Used:           used,
	})
}

// ChecksFor returns all checks recorded for one subscription.
func (u *Usage) ChecksFor(ctx context.Context, subscriptionID string) ([]*entity.UsageCheck, error) {
	if subscriptionID == "" {
		return nil, ErrInvalidID
	}
	return u.Ur.ListChecksBySub(ctx, subscriptionID)
}

// Pending lists active and trial subscriptions with no check recorded for
// the month containing now, i.e. the monthly check-in queue.
func (u *Usage) Pending(ctx context.Context, now time.Time) ([]*entity.Subscription, error) {
	subs, err := u.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := u.Ur.ListChecks(ctx)
	if err != nil {
		return nil, err
	}

	month := now.UTC().Format(monthLayout)
	checked := map[string]bool{}
	for _, c := range checks {
		if c.Month == month {
			checked[c.SubscriptionID] = true
		}
	}

	var pending []*entity.Subscription
	for _, s := range subs {
		if s.Status != entity.StatusActive && s.Status != entity.StatusTrial {
			continue
		}
		if !checked[s.ID] {
			pending = append(pending, s)
		}
	}
	return pending, nil
}
