package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"subsqueeze/internal/transfer"
)

func newExportCommand(uc UseCases) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export subscriptions to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := uc.Subs.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				if err := transfer.Export(f, subs); err != nil {
					return err
				}
				fmt.Fprintf(out, "exported %d subscriptions to %s\n", len(subs), path)
				return nil
			}
			return transfer.Export(out, subs)
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newImportCommand(uc UseCases, log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import subscriptions from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := uc.Importer.Import(cmd.Context(), f, time.Now().UTC())
			if err != nil {
				return err
			}
			for _, diag := range res.Errors {
				log.Warn("import", slog.String("row", diag))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", res.Imported, res.Skipped)
			return nil
		},
	}
}
