package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"subsqueeze/internal/entity"
)

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		name       string
		cadence    entity.Cadence
		customDays int
		want       int
	}{
		{"weekly", entity.CadenceWeekly, 0, 7},
		{"monthly", entity.CadenceMonthly, 0, 30},
		{"yearly", entity.CadenceYearly, 0, 365},
		{"custom", entity.CadenceCustom, 14, 14},
		{"custom without days falls back", entity.CadenceCustom, 0, 30},
		{"custom negative days falls back", entity.CadenceCustom, -5, 30},
		{"unknown cadence falls back", entity.Cadence("fortnightly"), 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalDays(tt.cadence, tt.customDays))
		})
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	t.Run("monthly is identity", func(t *testing.T) {
		assert.InDelta(t, 9.99, MonthlyEquivalent(9.99, entity.CadenceMonthly, 0), 1e-9)
	})

	t.Run("weekly scales by 52/12", func(t *testing.T) {
		assert.InDelta(t, 10*52.0/12.0, MonthlyEquivalent(10, entity.CadenceWeekly, 0), 1e-9)
	})

	t.Run("yearly divides by 12", func(t *testing.T) {
		assert.InDelta(t, 120.0/12.0, MonthlyEquivalent(120, entity.CadenceYearly, 0), 1e-9)
	})

	t.Run("custom scales by 365/(days*12)", func(t *testing.T) {
		assert.InDelta(t, 20*365.0/(14*12.0), MonthlyEquivalent(20, entity.CadenceCustom, 14), 1e-9)
	})

	t.Run("custom without days keeps amount", func(t *testing.T) {
		assert.InDelta(t, 20.0, MonthlyEquivalent(20, entity.CadenceCustom, 0), 1e-9)
	})
}

// Twelve monthly equivalents must equal the naive yearly cost of each
// cadence, within floating tolerance.
func TestMonthlyEquivalent_YearlyConsistency(t *testing.T) {
	tests := []struct {
		name       string
		cadence    entity.Cadence
		customDays int
		amount     float64
		yearly     float64
	}{
		{"weekly", entity.CadenceWeekly, 0, 11.50, 11.50 * 52},
		{"monthly", entity.CadenceMonthly, 0, 9.99, 9.99 * 12},
		{"yearly", entity.CadenceYearly, 0, 144, 144},
		{"custom 73 days", entity.CadenceCustom, 73, 30, 30 * 365.0 / 73.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalent(tt.amount, tt.cadence, tt.customDays) * 12
			assert.InDelta(t, tt.yearly, got, 1e-6)
		})
	}
}
