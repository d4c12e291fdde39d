package jsonfile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"subsqueeze/internal/entity"
	"subsqueeze/internal/usecase"
)

// SubRepository stores the subscription collection in subscriptions.json.
type SubRepository struct {
	store *Store
}

func NewSubRepository(store *Store) *SubRepository {
	return &SubRepository{store: store}
}

func (r *SubRepository) ListSubs(_ context.Context) ([]*entity.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *SubRepository) GetSubByID(_ context.Context, id string) (*entity.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, usecase.ErrSubscriptionNotFound
}

func (r *SubRepository) SaveSub(_ context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if sub == nil {
		return nil, fmt.Errorf("save sub: %w", usecase.ErrInvalidSubscription)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return nil, err
	}

	saved := sub.Clone()
	saved.ID = uuid.NewString()
	now := r.store.now().UTC()
	saved.CreatedAt = now
	saved.UpdatedAt = now

	subs = append(subs, saved)
	if err := r.store.write(subscriptionsFile, subs); err != nil {
		return nil, fmt.Errorf("save sub: %w", err)
	}
	return saved, nil
}

func (r *SubRepository) UpdateSub(_ context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	if sub == nil || sub.ID == "" {
		return nil, fmt.Errorf("update sub: %w", usecase.ErrInvalidSubscription)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return nil, err
	}
	for i, existing := range subs {
		if existing.ID != sub.ID {
			continue
		}
		updated := sub.Clone()
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = r.store.now().UTC()
		subs[i] = updated
		if err := r.store.write(subscriptionsFile, subs); err != nil {
			return nil, fmt.Errorf("update sub: %w", err)
		}
		return updated, nil
	}
	return nil, usecase.ErrSubscriptionNotFound
}

func (r *SubRepository) DeleteSub(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subs, err := r.load()
	if err != nil {
		return err
	}
	for i, s := range subs {
		if s.ID != id {
			continue
		}
		subs = append(subs[:i], subs[i+1:]...)
		if err := r.store.write(subscriptionsFile, subs); err != nil {
			return fmt.Errorf("delete sub: %w", err)
		}
		return nil
	}
	return usecase.ErrSubscriptionNotFound
}

func (r *SubRepository) load() ([]*entity.Subscription, error) {
	var subs []*entity.Subscription
	if err := r.store.read(subscriptionsFile, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
