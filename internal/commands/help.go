package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show an overview of weeklog",
	Long:  `Display an overview of all weeklog commands, or the usual help for one command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return fmt.Errorf("unknown help topic %q", args[0])
			}
			return target.Help()
		}
		showOverview(cmd.OutOrStdout())
		return nil
	},
}

func showOverview(w io.Writer) {
	fmt.Fprint(w, `
weeklog - weekly time sheet for the terminal

COMMANDS:

  add                     Log hours for a day of the week (no flags: interactive form)
    -p, --project         Project ("i", "indirect t" expand to indirect projects)
    -s, --system          System, stored upper case
    -H, --hours           Hours in steps of 0.25 ("1,5" works too)
    -t, --task            Task ("dev" -> Development, "sup" -> Support)
    -d, --day             Day of the week, any unique prefix (default today)
    -w, --weeks-ago       Week to log into: 0 current, 1 last week, ...
    -n, --note            Free text note

    Example:
      weeklog add -p Apollo -s erp -H 1.5 -t dev -d mon

  ls                      List the entries of a week
    -w, --weeks-ago       Week to show
    -o, --output          table, json or yaml

  edit <id>               Change fields of an entry (same flags as add)
  rm <id>...              Delete entries

  summary                 Hours per project and day of a week
    -w, --weeks-ago       Week to summarise

  weeks                   List selectable weeks
    -n, --count           Number of weeks (default 53)

  ui                      Browse and edit a week in the terminal
    ←/→           Previous / next week
    tab           Choose column
    enter         Edit cell
    a             Add an entry
    d             Delete entry
    s             Toggle summary
    esc/q         Quit

  db show                 Show the configured database
  db set <path>           Point weeklog at a database file
    --create              Create the file first

  version                 Print version information
  help [command]          Show this help, or help for one command

GLOBAL FLAGS:
  --config <file>         Config file (default $WEEKLOG_CONFIG or ~/.weeklog/config.json)
  -v, --verbose           Log database activity to stderr

`)
}
