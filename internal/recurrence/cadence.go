// Package recurrence holds the pure date arithmetic behind renewal
// schedules: cadence-to-interval mapping, occurrence counting inside
// arbitrary windows, and rolling stale renewal dates forward. Everything
// operates at calendar-day granularity in UTC and touches no storage.
package recurrence

import "subsqueeze/internal/entity"

// fallbackDays is used when a custom cadence carries no usable interval.
// Degenerate intervals are rejected at the data-entry boundary; this is
// only a safety net for records that slipped past it.
const fallbackDays = 30

// IntervalDays converts a cadence into the number of days between
// renewals. customDays applies only to the custom cadence.
func IntervalDays(cadence entity.Cadence, customDays int) int {
	switch cadence {
	case entity.CadenceWeekly:
		return 7
	case entity.CadenceYearly:
		return 365
	case entity.CadenceCustom:
		if customDays > 0 {
			return customDays
		}
		return fallbackDays
	default:
		return fallbackDays
	}
}

// MonthlyEquivalent normalizes a per-cycle amount to a per-month cost for
// cross-cadence comparison.
func MonthlyEquivalent(amount float64, cadence entity.Cadence, customDays int) float64 {
	switch cadence {
	case entity.CadenceWeekly:
		return amount * 52 / 12
	case entity.CadenceYearly:
		return amount / 12
	case entity.CadenceCustom:
		if customDays > 0 {
			return amount * 365 / (float64(customDays) * 12)
		}
		return amount
	default:
		return amount
	}
}

// SubscriptionInterval is IntervalDays applied to a record.
func SubscriptionInterval(s *entity.Subscription) int {
	return IntervalDays(s.Cadence, s.CustomDays)
}

// SubscriptionMonthly is MonthlyEquivalent applied to a record.
func SubscriptionMonthly(s *entity.Subscription) float64 {
	return MonthlyEquivalent(s.Amount, s.Cadence, s.CustomDays)
}
