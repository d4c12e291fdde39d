package jsonfile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// UsageRepository stores monthly self-reports in usage_checks.json.
type UsageRepository struct {
	store *Store
}

func NewUsageRepository(store *Store) *UsageRepository {
	return &UsageRepository{store: store}
}

func (r *UsageRepository) ListChecks(_ context.Context) ([]*entity.UsageCheck, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *UsageRepository) ListChecksBySub(_ context.Context, subscriptionID string) ([]*entity.UsageCheck, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	checks, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []*entity.UsageCheck
	for _, c := range checks {
		if c.SubscriptionID == subscriptionID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ReplaceCheck drops any stored check for the same (subscription, month)
// pair before inserting, so the pair stays unique.
func (r *UsageRepository) ReplaceCheck(_ context.Context, c *entity.UsageCheck) (*entity.UsageCheck, error) {
	if c == nil {
		return nil, fmt.Errorf("replace check: %w", usecase.ErrInvalidUsageCheck)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	checks, err := r.load()
	if err != nil {
		return nil, err
	}

	kept := checks[:0]
	for _, existing := range checks {
		if existing.SubscriptionID == c.SubscriptionID && existing.Month == c.Month {
			continue
		}
		kept = append(kept, existing)
	}

	saved := *c
	saved.ID = uuid.NewString()
	saved.Timestamp = r.store.now().UTC()

	kept = append(kept, &saved)
	if err := r.store.write(usageChecksFile, kept); err != nil {
		return nil, fmt.Errorf("replace check: %w", err)
	}
	return &saved, nil
}

func (r *UsageRepository) load() ([]*entity.UsageCheck, error) {
	var checks []*entity.UsageCheck
	if err := r.store.read(usageChecksFile, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}
