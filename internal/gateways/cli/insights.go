package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newInsightsCommand(uc UseCases) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending summaries and projections",
	}
	cmd.AddCommand(
		newInsightsSummaryCommand(uc),
		newInsightsTrendCommand(uc),
		newInsightsProjectionCommand(uc),
		newInsightsYoYCommand(uc),
		newInsightsSavingsCommand(uc),
	)
	return cmd
}

func newInsightsSummaryCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Current totals, upcoming renewals and alerts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := uc.Insights.Overview(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "subscriptions: %d active, %d trial\n", o.ActiveCount, o.TrialCount)
			for currency, total := range o.Totals {
				fmt.Fprintf(out, "monthly total: %s\n", money(total, currency))
			}
			if o.Budget != nil {
				fmt.Fprintf(out, "budget: %s of %s (%.0f%%)\n",
					money(o.Budget.Spending, o.Budget.Currency),
					money(o.Budget.Limit, o.Budget.Currency),
					o.Budget.Percent)
				switch {
				case o.Budget.OverLimit:
					fmt.Fprintln(out, "  over budget")
				case o.Budget.Approaching:
					fmt.Fprintln(out, "  approaching the limit")
				}
			}
			if len(o.Upcoming) > 0 {
				fmt.Fprintln(out, "renewing within 7 days:")
				for _, s := range o.Upcoming {
					fmt.Fprintf(out, "  %s  %s  %s\n",
						s.NextRenewal.Format("2006-01-02"), s.Name, money(s.Amount, s.Currency))
				}
			}
			for _, trial := range o.Trials {
				fmt.Fprintf(out, "trial %q converts in %d days\n", trial.Subscription.Name, trial.DaysLeft)
			}
			for _, pc := range o.PriceChanges {
				fmt.Fprintf(out, "price change: %s %s -> %s\n",
					pc.Subscription.Name,
					money(pc.From, pc.Subscription.Currency),
					money(pc.To, pc.Subscription.Currency))
			}
			return nil
		},
	}
}

func newInsightsTrendCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Six-month spending trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buckets, stats, err := uc.Insights.TrendReport(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "MONTH\tTOTAL\t")
			for _, b := range buckets {
				marker := ""
				if b.Projected {
					marker = "(projected)"
				}
				fmt.Fprintf(w, "%s\t%.2f\t%s\n", b.Month, b.Total, marker)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "average: %.2f, month over month: %+d%%\n",
				stats.Average, stats.MonthOverMonthPct)
			return nil
		},
	}
}

func newInsightsProjectionCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "projection",
		Short: "Twelve-month cost projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			buckets, yearly, err := uc.Insights.Projection(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "MONTH\tTOTAL")
			for _, b := range buckets {
				fmt.Fprintf(w, "%s\t%.2f\n", b.Month, b.Total)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "yearly (monthly equivalents x 12): %.2f\n", yearly)
			return nil
		},
	}
}

func newInsightsYoYCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "yoy",
		Short: "Year-over-year comparison",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := uc.Insights.YearOverYear(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "monthly now:       %.2f\n", report.CurrentMonthly)
			fmt.Fprintf(out, "monthly a year ago: %.2f\n", report.LastYearMonthly)
			fmt.Fprintf(out, "change:            %+.2f (%+d%%)\n", report.Change, report.ChangePercent)
			if len(report.NewThisYear) > 0 {
				fmt.Fprintln(out, "added this year:")
				for _, s := range report.NewThisYear {
					fmt.Fprintf(out, "  %s\n", s.Name)
				}
			}
			if len(report.RemovedThisYear) > 0 {
				fmt.Fprintln(out, "dropped this year:")
				for _, s := range report.RemovedThisYear {
					fmt.Fprintf(out, "  %s\n", s.Name)
				}
			}
			return nil
		},
	}
}

func newInsightsSavingsCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "savings",
		Short: "What cancelling unused subscriptions would save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := uc.Insights.Savings(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(report.Candidates) == 0 {
				fmt.Fprintln(out, "no unused subscriptions flagged")
				return nil
			}
			fmt.Fprintln(out, "not used last check-in:")
			for _, s := range report.Candidates {
				fmt.Fprintf(out, "  %s  %s\n", s.Name, money(s.Amount, s.Currency))
			}
			for currency, monthly := range report.MonthlyByCurrency {
				fmt.Fprintf(out, "potential savings: %s/month, %s/year\n",
					money(monthly, currency), money(report.YearlyByCurrency[currency], currency))
			}
			return nil
		},
	}
}
