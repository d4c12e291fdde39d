package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"subsqueeze/internal/usecase"
)

func newSettingsCommand(uc UseCases) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the app settings",
	}
	cmd.AddCommand(newSettingsShowCommand(uc), newSettingsSetCommand(uc))
	return cmd
}

func newSettingsShowCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := uc.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "default currency:       %s\n", s.DefaultCurrency)
			fmt.Fprintf(out, "default reminder days:  %d\n", s.DefaultReminderDays)
			fmt.Fprintf(out, "trials count in totals: %t\n", s.IncludeTrialsInTotal)
			if s.MonthlyBudgetLimit != nil {
				fmt.Fprintf(out, "monthly budget:         %s (alert at %.0f%%)\n",
					money(*s.MonthlyBudgetLimit, s.DefaultCurrency), s.BudgetAlertThreshold)
			} else {
				fmt.Fprintln(out, "monthly budget:         not set")
			}
			fmt.Fprintf(out, "trial warning window:   %d days\n", s.TrialWarningDays)
			return nil
		},
	}
}

func newSettingsSetCommand(uc UseCases) *cobra.Command {
	var (
		currency      string
		reminderDays  int
		includeTrials bool
		budget        float64
		clearBudget   bool
		threshold     float64
		trialWarning  int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the flags you pass are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch usecase.SettingsPatch
			flags := cmd.Flags()

			if flags.Changed("currency") {
				patch.DefaultCurrency = &currency
			}
			if flags.Changed("reminder-days") {
				patch.DefaultReminderDays = &reminderDays
			}
			if flags.Changed("include-trials") {
				patch.IncludeTrialsInTotal = &includeTrials
			}
			if flags.Changed("budget") {
				patch.MonthlyBudgetLimit = &budget
			}
			if clearBudget {
				patch.ClearMonthlyBudget = true
			}
			if flags.Changed("budget-threshold") {
				patch.BudgetAlertThreshold = &threshold
			}
			if flags.Changed("trial-warning-days") {
				patch.TrialWarningDays = &trialWarning
			}

			if _, err := uc.Settings.Update(cmd.Context(), patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "default currency code")
	cmd.Flags().IntVar(&reminderDays, "reminder-days", 0, "default reminder lead days")
	cmd.Flags().BoolVar(&includeTrials, "include-trials", true, "count trials toward totals")
	cmd.Flags().Float64Var(&budget, "budget", 0, "monthly budget limit")
	cmd.Flags().BoolVar(&clearBudget, "clear-budget", false, "remove the budget limit")
	cmd.Flags().Float64Var(&threshold, "budget-threshold", 0, "budget alert threshold percent")
	cmd.Flags().IntVar(&trialWarning, "trial-warning-days", 0, "trial expiry warning window in days")
	return cmd
}
