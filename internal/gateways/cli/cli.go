// Package cli is the cobra command surface. It does data-entry parsing
// and rendering only; all behavior lives in the usecase layer.
package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/spf13/cobra"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
	"subsqueeze/internal/transfer"
	"subsqueeze/internal/usecase"
)

// UseCases bundles everything the commands need.
type UseCases struct {
	Subs      *usecase.Subscription
	Usage     *usecase.Usage
	Methods   *usecase.PaymentMethods
	Settings  *usecase.Settings
	Insights  *usecase.Insights
	Reminders *usecase.Reminders
	Importer  *transfer.Importer
}

// New builds the root command tree.
func New(uc UseCases, log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "subsqueeze",
		Short:         "Track recurring subscriptions and squeeze out the ones you don't use",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCommand(uc),
		newListCommand(uc),
		newShowCommand(uc),
		newUpdateCommand(uc),
		newDeleteCommand(uc),
		newAdvanceCommand(uc, log),
		newUsageCommand(uc),
		newInsightsCommand(uc),
		newExportCommand(uc),
		newImportCommand(uc, log),
		newPaymentMethodCommand(uc),
		newSettingsCommand(uc),
		newRemindCommand(uc, log),
	)
	return root
}

// parseDay reads an ISO-8601 calendar day from a flag value.
func parseDay(s string) (time.Time, error) {
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return recurrence.Day(time.Time(d)), nil
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatMembers(members []entity.SharedMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		if m.Share != nil {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", m.Name, *m.Share))
			continue
		}
		parts = append(parts, m.Name)
	}
	return strings.Join(parts, ", ")
}
