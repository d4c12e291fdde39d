package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subsqueeze/internal/entity"
)

func newUsageCommand(uc UseCases) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Monthly did-you-use-it check-ins",
	}
	cmd.AddCommand(newUsageRecordCommand(uc), newUsagePendingCommand(uc))
	return cmd
}

func newUsageRecordCommand(uc UseCases) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "record <id> <yes|no|skip>",
		Short: "Record whether a subscription was used this month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = time.Now().UTC().Format("2006-01")
			}
			check, err := uc.Usage.Record(cmd.Context(), args[0], month, entity.UsageAnswer(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %s for %s\n", check.Used, check.Month)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to record, YYYY-MM (default: current)")
	return cmd
}

func newUsagePendingCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List subscriptions with no check-in this month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pending, err := uc.Usage.Pending(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all caught up")
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tAMOUNT")
			for _, s := range pending {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, money(s.Amount, s.Currency))
			}
			return w.Flush()
		},
	}
}
