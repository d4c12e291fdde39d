package jsonfile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"subsqueeze/internal/entity"
)

// EventRepository stores the audit log in events.json. Entries are only
// ever appended.
type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) ListEvents(_ context.Context) ([]*entity.EventLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.load()
}

func (r *EventRepository) ListEventsBySub(_ context.Context, subscriptionID string) ([]*entity.EventLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []*entity.EventLog
	for _, e := range events {
		if e.SubscriptionID == subscriptionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EventRepository) AppendEvent(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
	if e == nil {
		return nil, fmt.Errorf("append event: nil event")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events, err := r.load()
	if err != nil {
		return nil, err
	}

	saved := *e
	saved.ID = uuid.NewString()
	if saved.Timestamp.IsZero() {
		saved.Timestamp = r.store.now().UTC()
	}

	events = append(events, &saved)
	if err := r.store.write(eventsFile, events); err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return &saved, nil
}

func (r *EventRepository) load() ([]*entity.EventLog, error) {
	var events []*entity.EventLog
	if err := r.store.read(eventsFile, &events); err != nil {
		return nil, err
	}
	return events, nil
}
