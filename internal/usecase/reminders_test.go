package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"subsqueeze/internal/entity"
)

func Test_reminders_Due(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := day(2025, 3, 10)

	build := func(id string, renewal, lead int, enabled bool) *entity.Subscription {
		s := validSub()
		s.ID = id
		s.NextRenewal = day(2025, 3, renewal)
		s.ReminderDays = lead
		s.ReminderEnabled = enabled
		return s
	}

	t.Run("lead window and enablement", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		subs := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		settings := NewMockSettingsRepository(ctrl)

		inWindow := build("sub-1", 12, 3, true)
		outside := build("sub-2", 20, 3, true)
		disabled := build("sub-3", 11, 3, false)
		// No lead of its own, so the settings default of 3 days applies.
		defaulted := build("sub-4", 13, 0, true)

		subs.EXPECT().ListSubs(ctx).Times(1).
			Return([]*entity.Subscription{inWindow, outside, disabled, defaulted}, nil)
		settings.EXPECT().GetSettings(ctx).Times(1).Return(entity.DefaultSettings(), nil)
		events.EXPECT().ListEvents(ctx).Times(1).Return(nil, nil)

		uc := NewReminders(subs, events, settings)

		due, err := uc.Due(ctx, now)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, "sub-1", due[0].Subscription.ID)
		assert.Equal(t, 2, due[0].DaysUntil)
		assert.Equal(t, "sub-4", due[1].Subscription.ID)
	})

	t.Run("already sent for this renewal date", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		subs := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		settings := NewMockSettingsRepository(ctrl)

		pending := build("sub-1", 12, 3, true)
		sent, err := entity.NewEvent("sub-1", entity.EventReminderSent, entity.ReminderSentPayload{RenewalDate: "2025-03-12"})
		require.NoError(t, err)

		subs.EXPECT().ListSubs(ctx).Times(1).Return([]*entity.Subscription{pending}, nil)
		settings.EXPECT().GetSettings(ctx).Times(1).Return(entity.DefaultSettings(), nil)
		events.EXPECT().ListEvents(ctx).Times(1).Return([]*entity.EventLog{sent}, nil)

		uc := NewReminders(subs, events, settings)

		due, err := uc.Due(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("prior cycle's reminder does not block the next one", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		subs := NewMockSubscriptionRepository(ctrl)
		events := NewMockEventRepository(ctrl)
		settings := NewMockSettingsRepository(ctrl)

		pending := build("sub-1", 12, 3, true)
		previous, err := entity.NewEvent("sub-1", entity.EventReminderSent, entity.ReminderSentPayload{RenewalDate: "2025-02-12"})
		require.NoError(t, err)

		subs.EXPECT().ListSubs(ctx).Times(1).Return([]*entity.Subscription{pending}, nil)
		settings.EXPECT().GetSettings(ctx).Times(1).Return(entity.DefaultSettings(), nil)
		events.EXPECT().ListEvents(ctx).Times(1).Return([]*entity.EventLog{previous}, nil)

		uc := NewReminders(subs, events, settings)

		due, err := uc.Due(ctx, now)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "sub-1", due[0].Subscription.ID)
	})
}

func Test_reminders_MarkSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := NewMockEventRepository(ctrl)
	events.EXPECT().AppendEvent(ctx, gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, e *entity.EventLog) (*entity.EventLog, error) {
			assert.Equal(t, entity.EventReminderSent, e.Type)
			decoded, err := e.DecodePayload()
			require.NoError(t, err)
			assert.Equal(t, "2025-03-12", decoded.(*entity.ReminderSentPayload).RenewalDate)
			return e, nil
		})

	uc := NewReminders(NewMockSubscriptionRepository(ctrl), events, NewMockSettingsRepository(ctrl))

	err := uc.MarkSent(ctx, "sub-1", day(2025, 3, 12))
	assert.NoError(t, err)
}
