package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"subsqueeze/internal/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validSub() *entity.Subscription {
	return &entity.Subscription{
		Name:        "Netflix",
		Amount:      17.99,
		Currency:    "cad",
		Cadence:     entity.CadenceMonthly,
		NextRenewal: day(2025, 3, 15),
		Category:    entity.CategoryStreaming,
		Status:      entity.StatusActive,
	}
}

func Test_subscription_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("err, amount must be positive", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().SaveSub(gomock.Any(), gomock.Any()).Times(0)

		uc := NewSubscription(repo, events)

		sub := validSub()
		sub.Amount = 0
		_, err := uc.Register(ctx, sub)
		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})

	t.Run("err, custom cadence needs interval", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().SaveSub(gomock.Any(), gomock.Any()).Times(0)

		uc := NewSubscription(repo, events)

		sub := validSub()
		sub.Cadence = entity.CadenceCustom
		sub.CustomDays = 0
		_, err := uc.Register(ctx, sub)
		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})

	t.Run("err, repo returns error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		expected := errors.New("save error")
		repo.EXPECT().SaveSub(ctx, gomock.Any()).Times(1).Return(nil, expected)

		uc := NewSubscription(repo, events)

		_, err := uc.Register(ctx, validSub())
		assert.ErrorIs(t, err, expected)
	})

	t.Run("ok, normalizes and appends created event", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)

		repo.EXPECT().SaveSub(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
				assert.Equal(t, "CAD", s.Currency)
				s.ID = "sub-1"
				return s, nil
			}).Times(1)
		events.EXPECT().AppendEvent(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
				assert.Equal(t, "sub-1", e.SubscriptionID)
				assert.Equal(t, entity.EventCreated, e.Type)
				return e, nil
			}).Times(1)

		uc := NewSubscription(repo, events)

		sub := validSub()
		sub.NextRenewal = time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)
		got, err := uc.Register(ctx, sub)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", got.ID)
		assert.Equal(t, day(2025, 3, 15), got.NextRenewal)
	})
}

func Test_subscription_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := func() *entity.Subscription {
		s := validSub()
		s.ID = "sub-1"
		s.Currency = "CAD"
		return s
	}

	t.Run("err, empty id", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		uc := NewSubscription(NewMockSubscriptionRepository(ctrl), NewMockEventRepository(ctrl))

		_, err := uc.Update(ctx, "", SubscriptionPatch{})
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("ok, empty patch is a no-op", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		existing := stored()
		repo.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(existing, nil)
		repo.EXPECT().UpdateSub(gomock.Any(), gomock.Any()).Times(0)
		events.EXPECT().AppendEvent(gomock.Any(), gomock.Any()).Times(0)

		uc := NewSubscription(repo, events)

		got, err := uc.Update(ctx, "sub-1", SubscriptionPatch{})
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})

	t.Run("ok, status change wins over price change", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(stored(), nil)
		repo.EXPECT().UpdateSub(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
				return s, nil
			})
		events.EXPECT().AppendEvent(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
				assert.Equal(t, entity.EventStatusChange, e.Type)
				decoded, err := e.DecodePayload()
				require.NoError(t, err)
				p := decoded.(*entity.StatusChangePayload)
				assert.Equal(t, entity.StatusActive, p.From)
				assert.Equal(t, entity.StatusPaused, p.To)
				return e, nil
			})

		uc := NewSubscription(repo, events)

		paused := entity.StatusPaused
		amount := 19.99
		got, err := uc.Update(ctx, "sub-1", SubscriptionPatch{Status: &paused, Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPaused, got.Status)
		assert.Equal(t, 19.99, got.Amount)
	})

	t.Run("ok, price change event carries both amounts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(stored(), nil)
		repo.EXPECT().UpdateSub(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
				return s, nil
			})
		events.EXPECT().AppendEvent(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
				assert.Equal(t, entity.EventPriceChange, e.Type)
				decoded, err := e.DecodePayload()
				require.NoError(t, err)
				p := decoded.(*entity.PriceChangePayload)
				assert.Equal(t, 17.99, p.From)
				assert.Equal(t, 21.99, p.To)
				return e, nil
			})

		uc := NewSubscription(repo, events)

		amount := 21.99
		_, err := uc.Update(ctx, "sub-1", SubscriptionPatch{Amount: &amount})
		assert.NoError(t, err)
	})

	t.Run("ok, generic edit appends edited event", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(stored(), nil)
		repo.EXPECT().UpdateSub(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
				return s, nil
			})
		events.EXPECT().AppendEvent(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
				assert.Equal(t, entity.EventEdited, e.Type)
				decoded, err := e.DecodePayload()
				require.NoError(t, err)
				p := decoded.(*entity.EditedPayload)
				assert.Contains(t, p.Changes, "notes")
				return e, nil
			})

		uc := NewSubscription(repo, events)

		notes := "family plan"
		_, err := uc.Update(ctx, "sub-1", SubscriptionPatch{Notes: &notes})
		assert.NoError(t, err)
	})

	t.Run("err, patched record fails validation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		repo.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(stored(), nil)
		repo.EXPECT().UpdateSub(gomock.Any(), gomock.Any()).Times(0)

		uc := NewSubscription(repo, events)

		name := "   "
		_, err := uc.Update(ctx, "sub-1", SubscriptionPatch{Name: &name})
		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})
}

func Test_subscription_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("err, not found", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		repo.EXPECT().GetSubByID(ctx, "missing").Times(1).Return(nil, ErrSubscriptionNotFound)

		uc := NewSubscription(repo, NewMockEventRepository(ctrl))

		_, err := uc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("ok, returns deleted record", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		existing := validSub()
		existing.ID = "sub-9"
		repo.EXPECT().GetSubByID(ctx, "sub-9").Times(1).Return(existing, nil)
		repo.EXPECT().DeleteSub(ctx, "sub-9").Times(1).Return(nil)

		uc := NewSubscription(repo, NewMockEventRepository(ctrl))

		got, err := uc.Delete(ctx, "sub-9")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})
}

func Test_subscription_AdvanceRenewals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, stale anchor lands on next occurrence", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)

		stale := validSub()
		stale.ID = "sub-1"
		stale.NextRenewal = day(2025, 1, 10)

		repo.EXPECT().ListSubs(ctx).Times(1).Return([]*entity.Subscription{stale}, nil)
		repo.EXPECT().UpdateSub(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, s *entity.Subscription) (*entity.Subscription, error) {
				return s, nil
			})
		events.EXPECT().AppendEvent(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
				assert.Equal(t, entity.EventRenewalAdvanced, e.Type)
				decoded, err := e.DecodePayload()
				require.NoError(t, err)
				p := decoded.(*entity.RenewalAdvancedPayload)
				assert.Equal(t, "2025-01-10", p.From)
				assert.Equal(t, "2025-04-10", p.To)
				return e, nil
			})

		uc := NewSubscription(repo, events)

		advanced, err := uc.AdvanceRenewals(ctx, day(2025, 3, 12))
		require.NoError(t, err)
		require.Len(t, advanced, 1)
		assert.Equal(t, day(2025, 4, 10), advanced[0].To)
	})

	t.Run("ok, paused and current records untouched", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		repo := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)

		paused := validSub()
		paused.ID = "sub-p"
		paused.Status = entity.StatusPaused
		paused.NextRenewal = day(2024, 1, 1)

		current := validSub()
		current.ID = "sub-c"
		current.NextRenewal = day(2025, 3, 20)

		repo.EXPECT().ListSubs(ctx).Times(1).Return([]*entity.Subscription{paused, current}, nil)
		repo.EXPECT().UpdateSub(gomock.Any(), gomock.Any()).Times(0)
		events.EXPECT().AppendEvent(gomock.Any(), gomock.Any()).Times(0)

		uc := NewSubscription(repo, events)

		advanced, err := uc.AdvanceRenewals(ctx, day(2025, 3, 12))
		require.NoError(t, err)
		assert.Empty(t, advanced)
	})
}
