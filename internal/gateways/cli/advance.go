package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newAdvanceCommand(uc UseCases, log *slog.Logger) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Roll stale renewal dates forward to their next occurrence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			today := time.Now().UTC()
			if asOf != "" {
				parsed, err := parseDay(asOf)
				if err != nil {
					return err
				}
				today = parsed
			}

			advanced, err := uc.Subs.AdvanceRenewals(cmd.Context(), today)
			if err != nil {
				return err
			}
			if len(advanced) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all renewal dates are current")
				return nil
			}
			for _, a := range advanced {
				log.Debug("advanced renewal",
					slog.String("subscription", a.Subscription.ID),
					slog.String("to", a.To.Format("2006-01-02")))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n",
					a.Subscription.Name,
					a.From.Format("2006-01-02"),
					a.To.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "treat this date as today, YYYY-MM-DD")
	return cmd
}
