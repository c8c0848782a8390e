package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/parser"
	"github.com/balkashynov/weeklog/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [notes]",
	Short: "Log hours for a day of the week",
	Long: `Log hours against a project for one day of the selected week.

Without any field flags or notes an interactive form opens instead.

The day defaults to today when logging into the current week.
Either a task or notes is required.

Shortcuts:
  -p i, -p indirect      Indirect - others
  -p "indirect t|r"      Indirect - training / Indirect - R&D
  -t dev, -t s           Development / Support
  -d mon, -d thu         Any unique weekday prefix

Examples:
  weeklog add -p Apollo -s erp -H 1.5 -t dev
  weeklog add -p i -s hr -H 0.75 -d fri -w 1 "benefits enrolment"`,
	Args: cobra.ArbitraryArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		if len(args) == 0 && !entryFieldsChanged(cmd) {
			weeksAgo, _ := cmd.Flags().GetInt("weeks-ago")
			return tui.RunEntryForm(store, calendar, weeksAgo, cmd.OutOrStdout())
		}

		entry, err := entryFromFlags(cmd, args)
		if err != nil {
			return err
		}

		added, err := store.Add(entry)
		if err != nil {
			return fmt.Errorf("error adding entry: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added entry #%d: %sh on %s %s\n", added.ID, parser.FormatHours(added.Hours), added.Weekday, added.Date)
		fmt.Fprintf(out, "  Project: %s\n", added.Project)
		if added.System != "" {
			fmt.Fprintf(out, "  System: %s\n", added.System)
		}
		if added.Task != "" {
			fmt.Fprintf(out, "  Task: %s\n", added.Task)
		}
		if added.Notes != "" {
			fmt.Fprintf(out, "  Notes: %s\n", added.Notes)
		}
		return nil
	}),
}

// entryFieldNames are the flags that set an entry field
var entryFieldNames = []string{"project", "system", "hours", "task", "day", "note"}

// entryFieldsChanged reports whether any entry field flag was given
func entryFieldsChanged(cmd *cobra.Command) bool {
	for _, name := range entryFieldNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// entryFromFlags builds a new entry from the add flags
func entryFromFlags(cmd *cobra.Command, args []string) (models.Entry, error) {
	projectFlag, _ := cmd.Flags().GetString("project")
	systemFlag, _ := cmd.Flags().GetString("system")
	hoursFlag, _ := cmd.Flags().GetString("hours")
	taskFlag, _ := cmd.Flags().GetString("task")
	dayFlag, _ := cmd.Flags().GetString("day")
	weeksAgo, _ := cmd.Flags().GetInt("weeks-ago")
	note, _ := cmd.Flags().GetString("note")

	project := parser.CompleteProject(projectFlag)
	if project == "" {
		return models.Entry{}, fmt.Errorf("project is required (--project)")
	}

	hours, err := parser.ParseHoursFloat(hoursFlag)
	if err != nil {
		return models.Entry{}, err
	}

	notes := strings.TrimSpace(note)
	if len(args) > 0 {
		notes = strings.TrimSpace(strings.Join(args, " "))
	}

	task := parser.CompleteTask(taskFlag)
	if task == "" && notes == "" {
		return models.Entry{}, fmt.Errorf("either a task (--task) or notes is required")
	}

	day, err := resolveDay(dayFlag, weeksAgo)
	if err != nil {
		return models.Entry{}, err
	}
	date, err := calendar.WeeksAgo(weeksAgo).DateFor(day)
	if err != nil {
		return models.Entry{}, err
	}

	return models.Entry{
		Date:    date,
		Weekday: day,
		Project: project,
		System:  parser.NormalizeSystem(systemFlag),
		Hours:   hours,
		Task:    task,
		Notes:   notes,
	}, nil
}

// resolveDay completes the --day flag; it defaults to today only in the current week
func resolveDay(dayFlag string, weeksAgo int) (string, error) {
	if strings.TrimSpace(dayFlag) == "" {
		if weeksAgo != 0 {
			return "", fmt.Errorf("--day is required when logging into a past week")
		}
		return calendar.TodayName(), nil
	}
	return parser.CompleteWeekday(dayFlag)
}

// addEntryFlags registers the entry field flags shared by add and edit
func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("project", "p", "", "Project name")
	cmd.Flags().StringP("system", "s", "", "System (stored upper-case)")
	cmd.Flags().StringP("hours", "H", "", "Hours, in steps of 0.25")
	cmd.Flags().StringP("task", "t", "", "Task: Development, Support or free text")
	cmd.Flags().StringP("day", "d", "", "Weekday (default today)")
	cmd.Flags().IntP("weeks-ago", "w", 0, "Week to log into: 0 current, 1 last week, ...")
	cmd.Flags().StringP("note", "n", "", "Notes (trailing arguments take precedence)")
}

func init() {
	addEntryFlags(addCmd)
}
