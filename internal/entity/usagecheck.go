package entity

import "time"

// UsageAnswer is a monthly self-report on whether a subscription was used.
type UsageAnswer string

const (
	UsageYes  UsageAnswer = "yes"
	UsageNo   UsageAnswer = "no"
	UsageSkip UsageAnswer = "skip"
)

// ValidUsageAnswer reports whether s is one of yes/no/skip.
func ValidUsageAnswer(s string) bool {
	switch UsageAnswer(s) {
	case UsageYes, UsageNo, UsageSkip:
		return true
	}
	return false
}

// UsageCheck records one self-report for a (subscription, month) pair.
// Month is a calendar month in YYYY-MM form. At most one current check
// exists per pair; saving another replaces the prior one.
type UsageCheck struct {
	ID             string      `json:"id"`
	SubscriptionID string      `json:"subscriptionId"`
	Month          string      `json:"month"`
	Used           UsageAnswer `json:"used"`
	Timestamp      time.Time   `json:"timestamp"`
}
