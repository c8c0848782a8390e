package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/config"
	"github.com/balkashynov/weeklog/internal/db"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Show or change the database location",
}

var dbShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured database and whether it is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		store := newStore(cfg)
		defer store.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config:   %s\n", path)
		fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath)
		if cfg.DatabasePath != cfg.ResolvedPath() {
			fmt.Fprintf(out, "Resolved: %s\n", cfg.ResolvedPath())
		}
		if store.Connected() {
			fmt.Fprintln(out, "Status:   connected")
		} else {
			fmt.Fprintf(out, "Status:   not connected (%v)\n", store.LastError())
		}
		return nil
	},
}

var dbSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Point weeklog at a database file",
	Long: `Save a new database location and connect to it.

The file must exist unless --create is given. Paths under your home directory
are saved with a $HOME (or %USERPROFILE%) placeholder so the config can be
shared between machines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := filepath.Abs(config.Expand(args[0]))
		if err != nil {
			return err
		}

		if create, _ := cmd.Flags().GetBool("create"); create {
			if err := db.CreateDatabase(dbPath); err != nil {
				return err
			}
		}

		// Verify before saving so a typo does not replace a working config
		probe := db.New(config.Config{})
		if err := probe.Connect(dbPath); err != nil {
			return fmt.Errorf("cannot use %s: %w", dbPath, err)
		}
		probe.Close()

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Save(path, dbPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Database set to %s\n", cfg.DatabasePath)
		return nil
	},
}

func init() {
	dbSetCmd.Flags().Bool("create", false, "Create the database file if it does not exist")
	dbCmd.AddCommand(dbShowCmd)
	dbCmd.AddCommand(dbSetCmd)
}
