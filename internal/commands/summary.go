package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show hours per project and weekday",
	Long: `Show the weekly summary: hours summed per project for each day of the week.

Example output:
  Project           Mon    Tue    Wed    Thu    Fri    Sat    Sun   Total
  -----------------------------------------------------------------------
  Apollo              4      -      2      -      -      -      -       6
  Indirect - R&D      -    1.5      -      -   7.75      -      -    9.25
  -----------------------------------------------------------------------
  Total               4    1.5      2      -   7.75      -      -   15.25`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		weeksAgo, _ := cmd.Flags().GetInt("weeks-ago")

		span := calendar.WeeksAgo(weeksAgo)
		rows, err := store.Summary(span.Start(), span.End())
		if err != nil {
			return fmt.Errorf("failed to get summary: %w", err)
		}

		return report.RenderPivot(cmd.OutOrStdout(), report.BuildPivot(span, rows))
	}),
}

func init() {
	summaryCmd.Flags().IntP("weeks-ago", "w", 0, "Week to summarise: 0 current, 1 last week, ...")
}
