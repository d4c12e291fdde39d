package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newRemindCommand(uc UseCases, log *slog.Logger) *cobra.Command {
	var markSent bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "List renewal reminders that are due",
		RunE: func(cmd *cobra.Command, _ []string) error {
			due, err := uc.Reminders.Due(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(due) == 0 {
				fmt.Fprintln(out, "no reminders due")
				return nil
			}
			for _, d := range due {
				switch d.DaysUntil {
				case 0:
					fmt.Fprintf(out, "%s renews today (%s)\n",
						d.Subscription.Name, money(d.Subscription.Amount, d.Subscription.Currency))
				default:
					fmt.Fprintf(out, "%s renews in %d days on %s (%s)\n",
						d.Subscription.Name, d.DaysUntil,
						d.RenewalDate.Format("2006-01-02"),
						money(d.Subscription.Amount, d.Subscription.Currency))
				}
				if markSent {
					if err := uc.Reminders.MarkSent(cmd.Context(), d.Subscription.ID, d.RenewalDate); err != nil {
						log.Error("mark reminder sent",
							slog.String("subscription", d.Subscription.ID),
							slog.String("error", err.Error()))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markSent, "mark-sent", false, "record delivery so these reminders do not repeat")
	return cmd
}
