package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"subsqueeze/internal/entity"
)

// EventRepository backs the audit log with the events table. Rows are
// append-only.
type EventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db, now: time.Now}
}

func (r *EventRepository) ListEvents(ctx context.Context) ([]*entity.EventLog, error) {
	var models []EventModel
	if err := r.db.WithContext(ctx).Order("timestamp").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return toEntities(models), nil
}

func (r *EventRepository) ListEventsBySub(ctx context.Context, subscriptionID string) ([]*entity.EventLog, error) {
	var models []EventModel
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("timestamp").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list events by sub=%s: %w", subscriptionID, err)
	}
	return toEntities(models), nil
}

func (r *EventRepository) AppendEvent(ctx context.Context, e *entity.EventLog) (*entity.EventLog, error) {
	if e == nil {
		return nil, fmt.Errorf("append event: nil event")
	}
	model := eventToModel(e)
	model.ID = uuid.NewString()
	if model.Timestamp.IsZero() {
		model.Timestamp = r.now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return eventToEntity(model), nil
}

func toEntities(models []EventModel) []*entity.EventLog {
	out := make([]*entity.EventLog, 0, len(models))
	for i := range models {
		out = append(out, eventToEntity(&models[i]))
	}
	return out
}
