package commands

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newReconcileCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute every user's cached totals from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stale, err := store.Reconcile(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconciling: %w", err)
			}
			if stale > 0 {
				slog.Warn("Repaired stale user totals", "users", stale)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s users out of date, totals now match the ledger\n", humanize.Comma(int64(stale)))
			return err
		},
	}
}
