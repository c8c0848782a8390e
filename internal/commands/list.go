package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/report"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List entries of a week",
	Long:    "List the entries of the current week, or of an earlier week with --weeks-ago",
	Args:    cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		weeksAgo, _ := cmd.Flags().GetInt("weeks-ago")
		output, _ := cmd.Flags().GetString("output")

		span := calendar.WeeksAgo(weeksAgo)
		entries, err := store.List(span.Start(), span.End())
		if err != nil {
			return fmt.Errorf("error fetching entries: %w", err)
		}

		out := cmd.OutOrStdout()
		if output == "" || output == report.FormatTable {
			fmt.Fprintf(out, "%s\n\n", calendar.Label(weeksAgo))
		}
		return report.Encode(out, output, entries)
	}),
}

func init() {
	listCmd.Flags().IntP("weeks-ago", "w", 0, "Week to show: 0 current, 1 last week, ...")
	listCmd.Flags().StringP("output", "o", report.FormatTable, "Output format: table, json or yaml")
}
