package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
	"subsqueeze/internal/usecase"
)

type subFlags struct {
	name          string
	amount        float64
	currency      string
	cadence       string
	customDays    int
	nextRenewal   string
	category      string
	status        string
	reminder      bool
	reminderDays  int
	notes         string
	cancelURL     string
	paymentMethod string
	shared        []string
}

func (f *subFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "service name")
	cmd.Flags().Float64Var(&f.amount, "amount", 0, "amount per billing cycle")
	cmd.Flags().StringVar(&f.currency, "currency", "", "currency code (e.g. CAD)")
	cmd.Flags().StringVar(&f.cadence, "cadence", "monthly", "weekly|monthly|yearly|custom")
	cmd.Flags().IntVar(&f.customDays, "custom-days", 0, "interval in days for custom cadence")
	cmd.Flags().StringVar(&f.nextRenewal, "next-renewal", "", "next renewal date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.category, "category", "other", "streaming|utilities|software|fitness|other")
	cmd.Flags().StringVar(&f.status, "status", "active", "active|trial|paused|cancelled")
	cmd.Flags().BoolVar(&f.reminder, "reminder", false, "enable renewal reminders")
	cmd.Flags().IntVar(&f.reminderDays, "reminder-days", 0, "reminder lead days (0 = settings default)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.cancelURL, "cancel-url", "", "cancellation page URL")
	cmd.Flags().StringVar(&f.paymentMethod, "payment-method", "", "payment method id")
	cmd.Flags().StringArrayVar(&f.shared, "shared", nil, "shared member, Name or Name=sharePercent (repeatable)")
}

// parseMembers turns repeated --shared values into members; "Alex=50"
// carries an explicit share percent.
func parseMembers(raw []string) ([]entity.SharedMember, error) {
	members := make([]entity.SharedMember, 0, len(raw))
	for _, item := range raw {
		name, shareText, hasShare := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid shared member %q", item)
		}
		m := entity.SharedMember{ID: uuid.NewString(), Name: name}
		if hasShare {
			share, err := strconv.ParseFloat(strings.TrimSpace(shareText), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid share in %q: %w", item, err)
			}
			m.Share = &share
		}
		members = append(members, m)
	}
	return members, nil
}

func newAddCommand(uc UseCases) *cobra.Command {
	var f subFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			renewal, err := parseDay(f.nextRenewal)
			if err != nil {
				return err
			}
			members, err := parseMembers(f.shared)
			if err != nil {
				return err
			}

			sub := &entity.Subscription{
				Name:            f.name,
				Amount:          f.amount,
				Currency:        f.currency,
				Cadence:         entity.ParseCadence(f.cadence),
				CustomDays:      f.customDays,
				NextRenewal:     renewal,
				Category:        entity.ParseCategory(f.category),
				Status:          entity.ParseStatus(f.status),
				ReminderEnabled: f.reminder,
				ReminderDays:    f.reminderDays,
				Notes:           f.notes,
				CancelURL:       f.cancelURL,
				SharedMembers:   members,
				PaymentMethodID: f.paymentMethod,
			}
			created, err := uc.Subs.Register(cmd.Context(), sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("next-renewal")
	return cmd
}

func newListCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := uc.Subs.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tCADENCE\tNEXT RENEWAL\tSTATUS\tMONTHLY EQ")
			for _, s := range subs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.Name, money(s.Amount, s.Currency), s.Cadence,
					s.NextRenewal.Format("2006-01-02"), s.Status,
					money(recurrence.SubscriptionMonthly(s), s.Currency))
			}
			return w.Flush()
		},
	}
}

func newShowCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subscription with its audit trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := uc.Subs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", s.Name, s.ID)
			fmt.Fprintf(out, "  amount:        %s per %s\n", money(s.Amount, s.Currency), s.Cadence)
			if s.Cadence == entity.CadenceCustom {
				fmt.Fprintf(out, "  interval:      every %d days\n", s.CustomDays)
			}
			fmt.Fprintf(out, "  next renewal:  %s\n", s.NextRenewal.Format("2006-01-02"))
			fmt.Fprintf(out, "  category:      %s\n", s.Category)
			fmt.Fprintf(out, "  status:        %s\n", s.Status)
			if s.ReminderEnabled {
				fmt.Fprintf(out, "  reminder:      %d days before\n", s.ReminderDays)
			}
			if s.Notes != "" {
				fmt.Fprintf(out, "  notes:         %s\n", s.Notes)
			}
			if s.CancelURL != "" {
				fmt.Fprintf(out, "  cancel url:    %s\n", s.CancelURL)
			}
			if len(s.SharedMembers) > 0 {
				fmt.Fprintf(out, "  shared with:   %s\n", formatMembers(s.SharedMembers))
			}
			if s.PaymentMethodID != "" {
				fmt.Fprintf(out, "  paid with:     %s\n", s.PaymentMethodID)
			}

			events, err := uc.Subs.Events(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			if len(events) > 0 {
				fmt.Fprintln(out, "history:")
				for _, e := range events {
					fmt.Fprintf(out, "  %s  %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.Type)
				}
			}
			return nil
		},
	}
}

func newUpdateCommand(uc UseCases) *cobra.Command {
	var f subFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch usecase.SubscriptionPatch
			flags := cmd.Flags()

			if flags.Changed("name") {
				patch.Name = &f.name
			}
			if flags.Changed("amount") {
				patch.Amount = &f.amount
			}
			if flags.Changed("currency") {
				patch.Currency = &f.currency
			}
			if flags.Changed("cadence") {
				c := entity.ParseCadence(f.cadence)
				patch.Cadence = &c
			}
			if flags.Changed("custom-days") {
				patch.CustomDays = &f.customDays
			}
			if flags.Changed("next-renewal") {
				renewal, err := parseDay(f.nextRenewal)
				if err != nil {
					return err
				}
				patch.NextRenewal = &renewal
			}
			if flags.Changed("category") {
				c := entity.ParseCategory(f.category)
				patch.Category = &c
			}
			if flags.Changed("status") {
				s := entity.ParseStatus(f.status)
				patch.Status = &s
			}
			if flags.Changed("reminder") {
				patch.ReminderEnabled = &f.reminder
			}
			if flags.Changed("reminder-days") {
				patch.ReminderDays = &f.reminderDays
			}
			if flags.Changed("notes") {
				patch.Notes = &f.notes
			}
			if flags.Changed("cancel-url") {
				patch.CancelURL = &f.cancelURL
			}
			if flags.Changed("payment-method") {
				patch.PaymentMethodID = &f.paymentMethod
			}
			if flags.Changed("shared") {
				members, err := parseMembers(f.shared)
				if err != nil {
					return err
				}
				patch.SharedMembers = &members
			}

			updated, err := uc.Subs.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", updated.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDeleteCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := uc.Subs.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleted.Name)
			return nil
		},
	}
}
