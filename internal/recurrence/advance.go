package recurrence

import "time"

// NextOnOrAfter rolls next forward by whole intervals until it is not
// before today, comparing at calendar-day granularity. The step count is
// computed directly, so an anchor years in the past costs one division.
// next is returned unchanged (day-truncated) when it is already current or
// the interval is non-positive.
func NextOnOrAfter(next time.Time, intervalDays int, today time.Time) time.Time {
	n := Day(next)
	if intervalDays <= 0 {
		return n
	}
	behind := DaysBetween(n, today)
	if behind <= 0 {
		return n
	}
	steps := (behind + intervalDays - 1) / intervalDays
	return n.AddDate(0, 0, steps*intervalDays)
}
