package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mmynk/pennypool/internal/models"
	"github.com/mmynk/pennypool/internal/ranking"
)

func newLeaderboardCommand(opts *globalOptions) *cobra.Command {
	var metric string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show users ranked by a metric",
		Args:  cobra.NoArgs,
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

			m := models.Metric(metric)
			entries, err := ranking.NewEngine(store).Leaderboard(cmd.Context(), m, limit)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), leaderboardMarkdown(m, entries, f), opts.plain)
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(models.MetricNetWorth), "savings, expenses or net_worth")
	cmd.Flags().IntVar(&limit, "limit", models.LimitTop10, "rows to show: 10, 50, 100 or 0 for all")

	return cmd
}

func leaderboardMarkdown(m models.Metric, entries []models.LeaderboardEntry, f *amountFormatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s leaderboard\n\n", metricTitle(m))
	if len(entries) == 0 {
		b.WriteString("No users yet.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "| Rank | User | %s |\n", metricTitle(m))
	b.WriteString("|---:|---|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", humanize.Ordinal(e.Rank), cell(e.DisplayName), f.format(e.Value))
	}
	return b.String()
}

func newPlacementCommand(opts *globalOptions) *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "placement <user-id>",
		Short: "Show where one user ranks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			m := models.Metric(metric)
			p, err := ranking.NewEngine(store).Placement(cmd.Context(), args[0], m)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), placementLine(args[0], m, p))
			return err
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(models.MetricNetWorth), "savings, expenses or net_worth")

	return cmd
}

func placementLine(userID string, m models.Metric, p models.Placement) string {
	title := strings.ToLower(metricTitle(m))
	if !p.Ranked {
		return fmt.Sprintf("%s is not ranked by %s (%s users)", userID, title, humanize.Comma(int64(p.TotalUsers)))
	}
	return fmt.Sprintf("%s is %s of %s by %s, ahead of %.1f%% of users",
		userID, humanize.Ordinal(p.Rank), humanize.Comma(int64(p.TotalUsers)), title, p.Percentile)
}
