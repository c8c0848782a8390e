package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List selectable weeks and their --weeks-ago offsets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}
		for i, label := range calendar.Labels(count) {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, label)
		}
		return nil
	},
}

func init() {
	weeksCmd.Flags().IntP("count", "n", 53, "Number of weeks to list")
}
