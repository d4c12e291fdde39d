package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
)

// Insights is the aggregation/projection engine. All computations are pure
// functions of a collection snapshot, a reference time and the settings;
// the service methods only load the snapshot and delegate. Empty
// collections produce zero-valued results, never errors, and every ratio
// with a zero denominator resolves to 0.
type Insights struct {
	Sr  SubscriptionRepository
	Ur  UsageRepository
	Er  EventRepository
	Str SettingsRepository
}

// NewInsights creates the insights service with its repositories.
func NewInsights(sr SubscriptionRepository, ur UsageRepository, er EventRepository, str SettingsRepository) *Insights {
	return &Insights{Sr: sr, Ur: ur, Er: er, Str: str}
}

// MonthBucket is one month of the breakdown: the sum of the billing
// events that actually land in that calendar month. A yearly subscription
// contributes its full amount in its renewal month and nothing elsewhere.
type MonthBucket struct {
	// Month in YYYY-MM form.
	Month string
	Total float64
	// Projected marks buckets after the reference month; earlier buckets
	// (and the current one) reflect the regular schedule as it actually
	// ran.
	Projected bool
	Items     []BucketItem
}

// BucketItem is one subscription's contribution to a month bucket.
type BucketItem struct {
	SubscriptionID string
	Name           string
	Amount         float64
	Currency       string
}

// TrendStats summarizes the past buckets of a breakdown.
type TrendStats struct {
	// Average of past-bucket totals.
	Average float64
	// MonthOverMonthPct is the rounded percent change between the two
	// most recent past buckets; 0 when the earlier one is 0.
	MonthOverMonthPct int
}

// YearOverYear compares current spending with an estimate of a year ago.
type YearOverYear struct {
	CurrentMonthly  float64
	LastYearMonthly float64
	Change          float64
	ChangePercent   int
	NewThisYear     []*entity.Subscription
	RemovedThisYear []*entity.Subscription
}

// Savings lists cancellation candidates and what dropping them would
// save, bucketed per currency.
type Savings struct {
	Candidates        []*entity.Subscription
	MonthlyByCurrency map[string]float64
	YearlyByCurrency  map[string]float64
}

// RankedSubscription pairs a record with its monthly equivalent for
// top-by-cost listings.
type RankedSubscription struct {
	Subscription      *entity.Subscription
	MonthlyEquivalent float64
}

// Budget reports spending against the configured monthly limit.
type Budget struct {
	Currency    string
	Spending    float64
	Limit       float64
	Percent     float64
	Approaching bool
	OverLimit   bool
}

// TrialExpiry is a trial subscription converting within the warning
// window.
type TrialExpiry struct {
	Subscription *entity.Subscription
	DaysLeft     int
}

// PriceChange is a recent price_change event joined with its record.
type PriceChange struct {
	Subscription *entity.Subscription
	From         float64
	To           float64
	At           time.Time
}

// counted returns the subscriptions included in totals: active ones, plus
// trials when the settings say trials count.
func counted(subs []*entity.Subscription, settings *entity.AppSettings) []*entity.Subscription {
	out := make([]*entity.Subscription, 0, len(subs))
	for _, s := range subs {
		if s.Status == entity.StatusActive || (settings.IncludeTrialsInTotal && s.Status == entity.StatusTrial) {
			out = append(out, s)
		}
	}
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlyTotals sums monthly equivalents per currency bucket. Currencies
// are never converted into one another.
func MonthlyTotals(subs []*entity.Subscription, settings *entity.AppSettings) map[string]float64 {
	totals := map[string]float64{}
	for _, s := range counted(subs, settings) {
		totals[s.Currency] += recurrence.SubscriptionMonthly(s)
	}
	return totals
}

// Breakdown builds months consecutive buckets starting fromOffset months
// relative to now (fromOffset 0 is the current month; negative offsets
// reach into the past).
func Breakdown(subs []*entity.Subscription, settings *entity.AppSettings, now time.Time, fromOffset, months int) []MonthBucket {
	base := recurrence.MonthStart(now)
	qualifying := counted(subs, settings)

	buckets := make([]MonthBucket, 0, months)
	for i := 0; i < months; i++ {
		start := base.AddDate(0, fromOffset+i, 0)
		end := start.AddDate(0, 1, 0)

		bucket := MonthBucket{
			Month:     start.Format(monthLayout),
			Projected: fromOffset+i > 0,
		}
		for _, s := range qualifying {
			n := recurrence.OccurrencesInWindow(s.NextRenewal, recurrence.SubscriptionInterval(s), start, end)
			if n == 0 {
				continue
			}
			amount := s.Amount * float64(n)
			bucket.Total += amount
			bucket.Items = append(bucket.Items, BucketItem{
				SubscriptionID: s.ID,
				Name:           s.Name,
				Amount:         amount,
				Currency:       s.Currency,
			})
		}
		bucket.Total = roundCents(bucket.Total)
		buckets = append(buckets, bucket)
	}
	return buckets
}

// Trend averages the past buckets and computes the month-over-month
// change between the two most recent ones.
func Trend(buckets []MonthBucket) TrendStats {
	var past []MonthBucket
	for _, b := range buckets {
		if !b.Projected {
			past = append(past, b)
		}
	}
	if len(past) == 0 {
		return TrendStats{}
	}

	var sum float64
	for _, b := range past {
		sum += b.Total
	}
	stats := TrendStats{Average: sum / float64(len(past))}

	if len(past) >= 2 {
		prev := past[len(past)-2].Total
		latest := past[len(past)-1].Total
		if prev != 0 {
			stats.MonthOverMonthPct = int(math.Round((latest - prev) / prev * 100))
		}
	}
	return stats
}

// YearOverYearReport estimates how spending moved over the last year.
// "Existed a year ago" means created at least a year before now,
// whatever the current status; those records' monthly equivalents form
// the year-ago estimate.
func YearOverYearReport(subs []*entity.Subscription, settings *entity.AppSettings, now time.Time) YearOverYear {
	oneYearAgo := now.AddDate(-1, 0, 0)
	report := YearOverYear{
		NewThisYear:     []*entity.Subscription{},
		RemovedThisYear: []*entity.Subscription{},
	}

	for _, s := range counted(subs, settings) {
		report.CurrentMonthly += recurrence.SubscriptionMonthly(s)
	}
	for _, s := range subs {
		existedBefore := s.CreatedAt.Before(oneYearAgo)
		switch {
		case existedBefore:
			report.LastYearMonthly += recurrence.SubscriptionMonthly(s)
			if s.Status == entity.StatusCancelled || s.Status == entity.StatusPaused {
				report.RemovedThisYear = append(report.RemovedThisYear, s)
			}
		case s.Status == entity.StatusActive || s.Status == entity.StatusTrial:
			report.NewThisYear = append(report.NewThisYear, s)
		}
	}

	report.Change = report.CurrentMonthly - report.LastYearMonthly
	if report.LastYearMonthly != 0 {
		report.ChangePercent = int(math.Round(report.Change / report.LastYearMonthly * 100))
	}
	return report
}

// SavingsReport flags active/trial subscriptions whose most recent usage
// check says "no" as removal candidates, with the monthly and annualized
// amounts they would free up.
func SavingsReport(subs []*entity.Subscription, checks []*entity.UsageCheck) Savings {
	latest := map[string]*entity.UsageCheck{}
	for _, c := range checks {
		cur, ok := latest[c.SubscriptionID]
		if !ok || c.Month > cur.Month || (c.Month == cur.Month && c.Timestamp.After(cur.Timestamp)) {
			latest[c.SubscriptionID] = c
		}
	}

	report := Savings{
		MonthlyByCurrency: map[string]float64{},
		YearlyByCurrency:  map[string]float64{},
	}
	for _, s := range subs {
		if s.Status != entity.StatusActive && s.Status != entity.StatusTrial {
			continue
		}
		c, ok := latest[s.ID]
		if !ok || c.Used != entity.UsageNo {
			continue
		}
		monthly := recurrence.SubscriptionMonthly(s)
		report.Candidates = append(report.Candidates, s)
		report.MonthlyByCurrency[s.Currency] += monthly
		report.YearlyByCurrency[s.Currency] += monthly * 12
	}
	return report
}

// TopByCost ranks active and trial subscriptions by monthly equivalent,
// descending; ties keep insertion order.
func TopByCost(subs []*entity.Subscription, n int) []RankedSubscription {
	var ranked []RankedSubscription
	for _, s := range subs {
		if s.Status != entity.StatusActive && s.Status != entity.StatusTrial {
			continue
		}
		ranked = append(ranked, RankedSubscription{
			Subscription:      s,
			MonthlyEquivalent: recurrence.SubscriptionMonthly(s),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlyEquivalent > ranked[j].MonthlyEquivalent
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// UpcomingRenewals lists subscriptions renewing within the next
// withinDays days (today included), soonest first. Paused and cancelled
// records never renew.
func UpcomingRenewals(subs []*entity.Subscription, now time.Time, withinDays int) []*entity.Subscription {
	var upcoming []*entity.Subscription
	for _, s := range subs {
		if s.Status == entity.StatusPaused || s.Status == entity.StatusCancelled {
			continue
		}
		d := recurrence.DaysBetween(now, s.NextRenewal)
		if d >= 0 && d <= withinDays {
			upcoming = append(upcoming, s)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextRenewal.Before(upcoming[j].NextRenewal)
	})
	return upcoming
}

// BudgetStatus compares default-currency monthly spending with the
// configured limit. Nil when no limit is set.
func BudgetStatus(subs []*entity.Subscription, settings *entity.AppSettings) *Budget {
	if settings.MonthlyBudgetLimit == nil || *settings.MonthlyBudgetLimit <= 0 {
		return nil
	}
	limit := *settings.MonthlyBudgetLimit
	spending := MonthlyTotals(subs, settings)[settings.DefaultCurrency]
	threshold := settings.BudgetAlertThreshold
	if threshold <= 0 {
		threshold = 80
	}

	percent := spending / limit * 100
	return &Budget{
		Currency:    settings.DefaultCurrency,
		Spending:    roundCents(spending),
		Limit:       limit,
		Percent:     percent,
		Approaching: percent >= threshold && percent < 100,
		OverLimit:   percent >= 100,
	}
}

// ExpiringTrials lists trials converting within the settings warning
// window, soonest first.
func ExpiringTrials(subs []*entity.Subscription, settings *entity.AppSettings, now time.Time) []TrialExpiry {
	window := settings.TrialWarningDays
	if window <= 0 {
		window = 7
	}
	var expiring []TrialExpiry
	for _, s := range subs {
		if s.Status != entity.StatusTrial {
			continue
		}
		d := recurrence.DaysBetween(now, s.NextRenewal)
		if d >= 0 && d <= window {
			expiring = append(expiring, TrialExpiry{Subscription: s, DaysLeft: d})
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysLeft < expiring[j].DaysLeft
	})
	return expiring
}

// RecentPriceChanges joins price_change events from the trailing 30 days
// with their subscriptions, newest first. Events whose subscription was
// deleted are skipped.
func RecentPriceChanges(subs []*entity.Subscription, events []*entity.EventLog, now time.Time) []PriceChange {
	byID := map[string]*entity.Subscription{}
	for _, s := range subs {
		byID[s.ID] = s
	}
	cutoff := now.AddDate(0, 0, -30)

	var changes []PriceChange
	for _, e := range events {
		if e.Type != entity.EventPriceChange || e.Timestamp.Before(cutoff) {
			continue
		}
		sub, ok := byID[e.SubscriptionID]
		if !ok {
			continue
		}
		decoded, err := e.DecodePayload()
		if err != nil {
			continue
		}
		p := decoded.(*entity.PriceChangePayload)
		changes = append(changes, PriceChange{Subscription: sub, From: p.From, To: p.To, At: e.Timestamp})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].At.After(changes[j].At)
	})
	return changes
}

// Overview is the home-screen summary.
type Overview struct {
	Totals       map[string]float64
	ActiveCount  int
	TrialCount   int
	Upcoming     []*entity.Subscription
	Budget       *Budget
	Trials       []TrialExpiry
	PriceChanges []PriceChange
}

// Overview assembles the summary for the reference time.
func (i *Insights) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	subs, settings, err := i.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	events, err := i.Er.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	o := &Overview{
		Totals:       MonthlyTotals(subs, settings),
		Upcoming:     UpcomingRenewals(subs, now, 7),
		Budget:       BudgetStatus(subs, settings),
		Trials:       ExpiringTrials(subs, settings, now),
		PriceChanges: RecentPriceChanges(subs, events, now),
	}
	for _, s := range subs {
		switch s.Status {
		case entity.StatusActive:
			o.ActiveCount++
		case entity.StatusTrial:
			o.TrialCount++
		}
	}
	return o, nil
}

// TrendReport returns the six-month window around now (three months back,
// current, two forward) with its trend statistics.
func (i *Insights) TrendReport(ctx context.Context, now time.Time) ([]MonthBucket, TrendStats, error) {
	subs, settings, err := i.snapshot(ctx)
	if err != nil {
		return nil, TrendStats{}, err
	}
	buckets := Breakdown(subs, settings, now, -3, 6)
	return buckets, Trend(buckets), nil
}

// Projection returns the twelve months ahead plus the yearly total
// derived from monthly equivalents.
func (i *Insights) Projection(ctx context.Context, now time.Time) ([]MonthBucket, float64, error) {
	subs, settings, err := i.snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	var yearly float64
	for _, s := range counted(subs, settings) {
		yearly += recurrence.SubscriptionMonthly(s) * 12
	}
	return Breakdown(subs, settings, now, 0, 12), roundCents(yearly), nil
}

// YearOverYear loads the snapshot and compares against a year ago.
func (i *Insights) YearOverYear(ctx context.Context, now time.Time) (*YearOverYear, error) {
	subs, settings, err := i.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	report := YearOverYearReport(subs, settings, now)
	return &report, nil
}

// Savings loads the snapshot and flags cancellation candidates.
func (i *Insights) Savings(ctx context.Context) (*Savings, error) {
	subs, err := i.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}
	checks, err := i.Ur.ListChecks(ctx)
	if err != nil {
		return nil, err
	}
	report := SavingsReport(subs, checks)
	return &report, nil
}

// Top returns the n most expensive active/trial subscriptions.
func (i *Insights) Top(ctx context.Context, n int) ([]RankedSubscription, error) {
	subs, err := i.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}
	return TopByCost(subs, n), nil
}

func (i *Insights) snapshot(ctx context.Context) ([]*entity.Subscription, *entity.AppSettings, error) {
	subs, err := i.Sr.ListSubs(ctx)
	if err != nil {
		return nil, nil, err
	}
	settings, err := i.Str.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	return subs, settings, nil
}
