package recurrence

import "time"

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns b - a in whole calendar days. Both arguments are
// truncated to the day first.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// firstOnOrAfter returns the earliest member of the arithmetic sequence
// {anchor + k*interval : k in Z} that is not before start. Billing is
// assumed to have been happening regularly before the anchor and to
// continue after it, so the sequence extends both directions. The member
// is found with one division, not a day-by-day walk, so windows years away
// from the anchor cost the same as nearby ones.
func firstOnOrAfter(anchor time.Time, intervalDays int, start time.Time) time.Time {
	diff := DaysBetween(anchor, start)
	var steps int
	if diff > 0 {
		// anchor before the window: jump forward, rounding up.
		steps = (diff + intervalDays - 1) / intervalDays
	} else {
		// anchor inside or past the window: back-project in whole
		// intervals without crossing start.
		steps = -((-diff) / intervalDays)
	}
	return Day(anchor).AddDate(0, 0, steps*intervalDays)
}

// OccurrencesInWindow counts renewal dates falling in the half-open window
// [start, end): a renewal exactly on start counts, one exactly on end does
// not. Returns 0 for a non-positive interval or an empty window.
func OccurrencesInWindow(anchor time.Time, intervalDays int, start, end time.Time) int {
	if intervalDays <= 0 {
		return 0
	}
	s, e := Day(start), Day(end)
	if !s.Before(e) {
		return 0
	}
	first := firstOnOrAfter(anchor, intervalDays, s)
	remaining := DaysBetween(first, e)
	if remaining <= 0 {
		return 0
	}
	return (remaining + intervalDays - 1) / intervalDays
}

// OccurrenceDatesInWindow returns the renewal dates inside [start, end),
// in ascending order. Same window semantics as OccurrencesInWindow.
func OccurrenceDatesInWindow(anchor time.Time, intervalDays int, start, end time.Time) []time.Time {
	n := OccurrencesInWindow(anchor, intervalDays, start, end)
	if n == 0 {
		return nil
	}
	dates := make([]time.Time, 0, n)
	d := firstOnOrAfter(anchor, intervalDays, Day(start))
	for i := 0; i < n; i++ {
		dates = append(dates, d)
		d = d.AddDate(0, 0, intervalDays)
	}
	return dates
}
