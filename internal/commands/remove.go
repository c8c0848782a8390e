package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
)

var removeCmd = &cobra.Command{
	Use:     "rm <entry_id>...",
	Aliases: []string{"delete"},
	Short:   "Delete entries",
	Args:    cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		var failed []error
		for _, arg := range args {
			entryID, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				failed = append(failed, fmt.Errorf("invalid entry ID '%s'", arg))
				continue
			}

			if err := store.Delete(uint(entryID)); err != nil {
				failed = append(failed, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry #%d\n", entryID)
		}
		return errors.Join(failed...)
	}),
}
