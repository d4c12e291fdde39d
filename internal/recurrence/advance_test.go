package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextOnOrAfter(t *testing.T) {
	today := date(2024, time.September, 10)

	t.Run("future date untouched", func(t *testing.T) {
		next := date(2024, time.October, 1)
		assert.Equal(t, next, NextOnOrAfter(next, 30, today))
	})

	t.Run("today is already current", func(t *testing.T) {
		assert.Equal(t, today, NextOnOrAfter(today, 30, today))
	})

	t.Run("95 days stale jumps in whole intervals", func(t *testing.T) {
		next := today.AddDate(0, 0, -95)
		got := NextOnOrAfter(next, 30, today)
		// +90 would still be 5 days short, so four intervals are needed.
		assert.Equal(t, next.AddDate(0, 0, 120), got)
		assert.False(t, got.Before(today))
	})

	t.Run("exact multiple lands on today", func(t *testing.T) {
		next := today.AddDate(0, 0, -90)
		assert.Equal(t, today, NextOnOrAfter(next, 30, today))
	})

	t.Run("idempotent once caught up", func(t *testing.T) {
		next := date(2023, time.January, 3)
		first := NextOnOrAfter(next, 30, today)
		assert.Equal(t, first, NextOnOrAfter(first, 30, today))
	})

	t.Run("years stale terminates with one division", func(t *testing.T) {
		next := date(1990, time.June, 1)
		got := NextOnOrAfter(next, 7, today)
		assert.False(t, got.Before(today))
		assert.True(t, got.Before(today.AddDate(0, 0, 7)))
	})

	t.Run("non-positive interval returns truncated input", func(t *testing.T) {
		next := time.Date(2020, time.March, 5, 18, 30, 0, 0, time.UTC)
		assert.Equal(t, date(2020, time.March, 5), NextOnOrAfter(next, 0, today))
	})
}
