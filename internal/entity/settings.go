package entity

// AppSettings is the singleton user configuration. It is lazily
// materialized with defaults on first read; partial updates merge into the
// stored record.
type AppSettings struct {
	// DefaultCurrency is used for new subscriptions and for the budget
	// comparison bucket.
	DefaultCurrency string `json:"defaultCurrency"`
	// DefaultReminderDays is the reminder lead time applied when a
	// subscription does not set its own.
	DefaultReminderDays int `json:"defaultReminderDays"`
	// IncludeTrialsInTotal controls whether trial subscriptions count
	// toward totals and projections.
	IncludeTrialsInTotal bool `json:"includeTrialsInTotal"`
	// MonthlyBudgetLimit is an optional spending cap in the default
	// currency; nil means no budget is set.
	MonthlyBudgetLimit *float64 `json:"monthlyBudgetLimit,omitempty"`
	// BudgetAlertThreshold is the percentage of the limit at which the
	// budget warning starts.
	BudgetAlertThreshold float64 `json:"budgetAlertThreshold"`
	// TrialWarningDays is the window, in days, for trial-expiration
	// warnings.
	TrialWarningDays int `json:"trialWarningDays"`
}

// DefaultSettings returns the settings materialized on first read.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		DefaultCurrency:      "CAD",
		DefaultReminderDays:  3,
		IncludeTrialsInTotal: true,
		BudgetAlertThreshold: 80,
		TrialWarningDays:     7,
	}
}
