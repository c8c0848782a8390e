package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse and edit a week interactively",
	Long: `Open the week view. Use ←/→ to move between weeks, tab to pick a column,
enter to edit the selected cell, a to add, d to delete and s to toggle the summary.`,
	Args: cobra.NoArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		weeksAgo, _ := cmd.Flags().GetInt("weeks-ago")
		return tui.RunWeekTUI(store, calendar, weeksAgo)
	}),
}

func init() {
	uiCmd.Flags().IntP("weeks-ago", "w", 0, "Week to open: 0 current, 1 last week, ...")
}
