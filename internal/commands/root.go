package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/weeklog/internal/config"
	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/week"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	verbose    bool

	// calendar is the clock all week arithmetic runs on
	calendar = week.New()
)

var rootCmd = &cobra.Command{
	Use:   "weeklog",
	Short: "A weekly time sheet for the terminal",
	Long: `weeklog logs hours against a project, system and task for each day of a week.
Entries are kept in a local SQLite file; its location is stored in ~/.weeklog/config.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "weeklog %s (commit %s, built %s)\n", version, commit, date)
	},
}

// setupLogging installs the default slog handler on stderr
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// resolveConfigPath returns --config or the default location
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// openStore loads the config and connects to the configured database.
// The returned store may be disconnected; callers decide whether that is fatal.
func openStore() (*db.Store, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return newStore(cfg), nil
}

// newStore connects to the database named by cfg with the CLI's logging setup
func newStore(cfg config.Config) *db.Store {
	gormLevel := logger.Silent
	if verbose {
		gormLevel = logger.Info
	}
	return db.New(cfg,
		db.WithLogger(slog.Default()),
		db.WithGormLogLevel(gormLevel),
	)
}

// withStore wraps a command so it runs against a connected store
func withStore(fn func(*cobra.Command, []string, *db.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if !store.Connected() {
			return fmt.Errorf("%w: %v\nRun 'weeklog db set <path>' to choose a database", db.ErrNotConnected, store.LastError())
		}
		return fn(cmd, args, store)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $WEEKLOG_CONFIG or ~/.weeklog/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log database activity to stderr")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetHelpCommand(helpCmd)
}
