package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"subsqueeze/internal/entity"
)

func Test_usage_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("err, malformed month", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		checks := NewMockUsageRepository(ctrl)
		checks.EXPECT().ReplaceCheck(gomock.Any(), gomock.Any()).Times(0)

		uc := NewUsage(checks, NewMockSubscriptionRepository(ctrl))

		_, err := uc.Record(ctx, "sub-1", "March 2025", entity.UsageYes)
		assert.ErrorIs(t, err, ErrInvalidUsageCheck)
	})

	t.Run("err, unknown answer", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		uc := NewUsage(NewMockUsageRepository(ctrl), NewMockSubscriptionRepository(ctrl))

		_, err := uc.Record(ctx, "sub-1", "2025-03", entity.UsageAnswer("maybe"))
		assert.ErrorIs(t, err, ErrInvalidUsageCheck)
	})

	t.Run("err, subscription missing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		subs := NewMockSubscriptionRepository(ctrl)
		subs.EXPECT().GetSubByID(ctx, "missing").Times(1).Return(nil, ErrSubscriptionNotFound)

		uc := NewUsage(NewMockUsageRepository(ctrl), subs)

		_, err := uc.Record(ctx, "missing", "2025-03", entity.UsageNo)
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("ok, replaces the pair's check", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		subs := NewMockSubscriptionRepository(ctrl)
		checks := NewMockUsageRepository(ctrl)
		subs.EXPECT().GetSubByID(ctx, "sub-1").Times(1).Return(validSub(), nil)
		checks.EXPECT().ReplaceCheck(ctx, gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, c *entity.UsageCheck) (*entity.UsageCheck, error) {
				assert.Equal(t, "sub-1", c.SubscriptionID)
				assert.Equal(t, "2025-03", c.Month)
				assert.Equal(t, entity.UsageNo, c.Used)
				c.ID = "check-1"
				return c, nil
			})

		uc := NewUsage(checks, subs)

		got, err := uc.Record(ctx, "sub-1", "2025-03", entity.UsageNo)
		require.NoError(t, err)
		assert.Equal(t, "check-1", got.ID)
	})
}

func Test_usage_Pending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	active := validSub()
	active.ID = "sub-a"
	checked := validSub()
	checked.ID = "sub-b"
	cancelled := validSub()
	cancelled.ID = "sub-c"
	cancelled.Status = entity.StatusCancelled

	subs := NewMockSubscriptionRepository(ctrl)
	checks := NewMockUsageRepository(ctrl)
	subs.EXPECT().ListSubs(ctx).Times(1).Return([]*entity.Subscription{active, checked, cancelled}, nil)
	checks.EXPECT().ListChecks(ctx).Times(1).Return([]*entity.UsageCheck{
		{SubscriptionID: "sub-b", Month: "2025-03", Used: entity.UsageYes},
		// A prior month's answer does not settle the current one.
		{SubscriptionID: "sub-a", Month: "2025-02", Used: entity.UsageYes},
	}, nil)

	uc := NewUsage(checks, subs)

	pending, err := uc.Pending(ctx, day(2025, 3, 12))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sub-a", pending[0].ID)
}
