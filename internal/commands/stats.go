package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmynk/pennypool/internal/ledger"
	"github.com/mmynk/pennypool/internal/models"
)

func newStatsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <user-id>",
		Short: "Show a user's ledger statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newAmountFormatter(opts.currency)
			if err != nil {
				return err
			}
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			user, err := store.GetUser(ctx, args[0])
			if err != nil {
				return err
			}
			stats, err := ledger.NewService(store).Stats(ctx, user.ID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), statsMarkdown(user, stats, f), opts.plain)
		},
	}
}

func statsMarkdown(user *models.User, s models.Stats, f *amountFormatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", user.DisplayName)
	fmt.Fprintf(&b, "Joined %s.\n\n", humanize.Time(time.Unix(user.CreatedAt, 0)))

	b.WriteString("| | Savings | Expenses |\n")
	b.WriteString("|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Total | %s | %s |\n", f.format(s.TotalSavings), f.format(s.TotalExpenses))
	fmt.Fprintf(&b, "| Records | %s | %s |\n", humanize.Comma(int64(s.SavingsCount)), humanize.Comma(int64(s.ExpensesCount)))
	fmt.Fprintf(&b, "| Highest | %s | %s |\n", f.formatNull(s.HighestSaving), f.formatNull(s.HighestExpense))
	fmt.Fprintf(&b, "| Lowest | %s | %s |\n", f.formatNull(s.LowestSaving), f.formatNull(s.LowestExpense))

	fmt.Fprintf(&b, "\n**Net worth:** %s\n", f.format(s.NetWorth))
	return b.String()
}
