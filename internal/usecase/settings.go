package usecase

import (
	"context"
	"fmt"
	"strings"

	"subsqueeze/internal/entity"
)

// Settings manages the singleton configuration record.
type Settings struct {
	Str SettingsRepository
}

// NewSettings creates the settings service.
func NewSettings(str SettingsRepository) *Settings {
	return &Settings{Str: str}
}

// SettingsPatch is a partial settings update; nil fields keep their stored
// value. ClearMonthlyBudget removes the budget limit entirely.
type SettingsPatch struct {
	DefaultCurrency      *string
	DefaultReminderDays  *int
	IncludeTrialsInTotal *bool
	MonthlyBudgetLimit   *float64
	ClearMonthlyBudget   bool
	BudgetAlertThreshold *float64
	TrialWarningDays     *int
}

// Get returns the stored settings, materialized with defaults on first
// read.
func (s *Settings) Get(ctx context.Context) (*entity.AppSettings, error) {
	return s.Str.GetSettings(ctx)
}

// Update merges the patch into the stored singleton and saves it back.
func (s *Settings) Update(ctx context.Context, patch SettingsPatch) (*entity.AppSettings, error) {
	current, err := s.Str.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if patch.DefaultCurrency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*patch.DefaultCurrency))
		if cur == "" {
			return nil, fmt.Errorf("%w: empty default currency", ErrInvalidSettings)
		}
		current.DefaultCurrency = cur
	}
	if patch.DefaultReminderDays != nil {
		if *patch.DefaultReminderDays < 0 {
			return nil, fmt.Errorf("%w: reminder lead days must be >= 0", ErrInvalidSettings)
		}
		current.DefaultReminderDays = *patch.DefaultReminderDays
	}
	if patch.IncludeTrialsInTotal != nil {
		current.IncludeTrialsInTotal = *patch.IncludeTrialsInTotal
	}
	if patch.ClearMonthlyBudget {
		current.MonthlyBudgetLimit = nil
	} else if patch.MonthlyBudgetLimit != nil {
		if *patch.MonthlyBudgetLimit <= 0 {
			return nil, fmt.Errorf("%w: budget limit must be > 0", ErrInvalidSettings)
		}
		v := *patch.MonthlyBudgetLimit
		current.MonthlyBudgetLimit = &v
	}
	if patch.BudgetAlertThreshold != nil {
		if *patch.BudgetAlertThreshold <= 0 || *patch.BudgetAlertThreshold > 100 {
			return nil, fmt.Errorf("%w: alert threshold must be in (0, 100]", ErrInvalidSettings)
		}
		current.BudgetAlertThreshold = *patch.BudgetAlertThreshold
	}
	if patch.TrialWarningDays != nil {
		if *patch.TrialWarningDays < 0 {
			return nil, fmt.Errorf("%w: trial warning days must be >= 0", ErrInvalidSettings)
		}
		current.TrialWarningDays = *patch.TrialWarningDays
	}

	return s.Str.SaveSettings(ctx, current)
}
