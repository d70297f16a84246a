// Package commands implements the pennyctl operator CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/pennypool/internal/config"
	"github.com/mmynk/pennypool/internal/storage/sqlite"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	dbPath   string
	currency string
	plain    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pennyctl",
		Short: "Operate a pennypool ledger database",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.dbPath != "" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			opts.dbPath = cfg.DBPath
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dbPath, "db", "", "database path (defaults to the configured DB_PATH)")
	flags.StringVar(&opts.currency, "currency", "USD", "ISO 4217 code used to display amounts")
	flags.BoolVar(&opts.plain, "plain", false, "print raw markdown instead of rendering it")

	rootCmd.AddCommand(
		newSeedCommand(opts),
		newReconcileCommand(opts),
		newLeaderboardCommand(opts),
		newPlacementCommand(opts),
		newStatsCommand(opts),
	)

	return rootCmd
}

func (o *globalOptions) openStore() (*sqlite.SQLiteStore, error) {
	store, err := sqlite.New(o.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", o.dbPath, err)
	}
	return store, nil
}
