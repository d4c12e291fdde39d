package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"subsqueeze/internal/entity"
)

func newPaymentMethodCommand(uc UseCases) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment-method",
		Short: "Manage payment methods",
	}
	cmd.AddCommand(
		newPaymentMethodAddCommand(uc),
		newPaymentMethodListCommand(uc),
		newPaymentMethodRemoveCommand(uc),
	)
	return cmd
}

func newPaymentMethodAddCommand(uc UseCases) *cobra.Command {
	var (
		name     string
		kind     string
		lastFour string
		color    string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a payment method",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := uc.Methods.Add(cmd.Context(), &entity.PaymentMethod{
				Name:     name,
				Type:     entity.ParsePaymentMethodType(kind),
				LastFour: lastFour,
				Color:    color,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&kind, "type", "other", "credit_card|debit_card|bank_account|paypal|other")
	cmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPaymentMethodListCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			methods, err := uc.Methods.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tLAST FOUR")
			for _, m := range methods {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Type, m.LastFour)
			}
			return w.Flush()
		},
	}
}

func newPaymentMethodRemoveCommand(uc UseCases) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a payment method, clearing references to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := uc.Methods.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
