package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrencesInWindow(t *testing.T) {
	tests := []struct {
		name     string
		anchor   time.Time
		interval int
		start    time.Time
		end      time.Time
		want     int
	}{
		{
			name:   "mid-month monthly anchor inside window",
			anchor: date(2024, time.January, 15), interval: 30,
			start: date(2024, time.January, 1), end: date(2024, time.February, 1),
			want: 1,
		},
		{
			name:   "yearly anchor a year ahead of the window",
			anchor: date(2025, time.June, 1), interval: 365,
			start: date(2024, time.August, 1), end: date(2024, time.September, 1),
			want: 0,
		},
		{
			name:   "weekly fills a 31-day month",
			anchor: date(2024, time.March, 4), interval: 7,
			start: date(2024, time.March, 1), end: date(2024, time.April, 1),
			want: 4,
		},
		{
			name:   "renewal on window start counts",
			anchor: date(2024, time.May, 1), interval: 30,
			start: date(2024, time.May, 1), end: date(2024, time.June, 1),
			want: 2, // May 1 and May 31
		},
		{
			name:   "renewal on window end excluded",
			anchor: date(2024, time.June, 1), interval: 30,
			start: date(2024, time.May, 2), end: date(2024, time.June, 1),
			want: 0,
		},
		{
			name:   "anchor far in the past still projects forward",
			anchor: date(2019, time.January, 10), interval: 30,
			start: date(2024, time.July, 1), end: date(2024, time.August, 1),
			want: 1,
		},
		{
			name:   "anchor far in the future back-projects",
			anchor: date(2030, time.January, 1), interval: 7,
			start: date(2024, time.February, 1), end: date(2024, time.March, 1),
			want: 4,
		},
		{
			name:   "zero interval is defensive zero",
			anchor: date(2024, time.January, 1), interval: 0,
			start: date(2024, time.January, 1), end: date(2024, time.February, 1),
			want: 0,
		},
		{
			name:   "negative interval is defensive zero",
			anchor: date(2024, time.January, 1), interval: -7,
			start: date(2024, time.January, 1), end: date(2024, time.February, 1),
			want: 0,
		},
		{
			name:   "empty window",
			anchor: date(2024, time.January, 1), interval: 30,
			start: date(2024, time.March, 1), end: date(2024, time.March, 1),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OccurrencesInWindow(tt.anchor, tt.interval, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Counts over [A,C) must equal the sum over [A,B) and [B,C) for any split
// point, for any anchor position relative to the window.
func TestOccurrencesInWindow_Additive(t *testing.T) {
	anchors := []time.Time{
		date(2020, time.February, 29),
		date(2024, time.June, 17),
		date(2031, time.December, 31),
	}
	intervals := []int{7, 13, 30, 90, 365}

	a := date(2024, time.January, 1)
	c := date(2026, time.January, 1)

	for _, anchor := range anchors {
		for _, iv := range intervals {
			for b := a; !b.After(c); b = b.AddDate(0, 2, 15) {
				whole := OccurrencesInWindow(anchor, iv, a, c)
				split := OccurrencesInWindow(anchor, iv, a, b) + OccurrencesInWindow(anchor, iv, b, c)
				assert.Equalf(t, whole, split, "anchor=%s interval=%d split=%s", anchor, iv, b)
			}
		}
	}
}

func TestOccurrenceDatesInWindow(t *testing.T) {
	t.Run("dates agree with count and step", func(t *testing.T) {
		anchor := date(2024, time.January, 15)
		start, end := date(2024, time.January, 1), date(2024, time.April, 1)

		dates := OccurrenceDatesInWindow(anchor, 30, start, end)
		assert.Equal(t, OccurrencesInWindow(anchor, 30, start, end), len(dates))
		assert.Equal(t, []time.Time{
			date(2024, time.January, 15),
			date(2024, time.February, 14),
			date(2024, time.March, 15),
		}, dates)
	})

	t.Run("empty result is nil", func(t *testing.T) {
		assert.Nil(t, OccurrenceDatesInWindow(date(2030, time.January, 1), 365, date(2024, time.January, 1), date(2024, time.February, 1)))
	})
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 31, DaysBetween(date(2024, time.January, 1), date(2024, time.February, 1)))
	assert.Equal(t, -1, DaysBetween(date(2024, time.January, 2), date(2024, time.January, 1)))
	// Time-of-day is irrelevant.
	assert.Equal(t, 1, DaysBetween(
		time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2024, time.January, 2, 0, 1, 0, 0, time.UTC),
	))
}
