package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/parser"
	"github.com/balkashynov/weeklog/internal/week"
)

var editCmd = &cobra.Command{
	Use:   "edit <entry_id>",
	Short: "Edit an existing entry",
	Long: `Edit fields of an existing entry. Only the flags you pass are changed.

Changing the day moves the entry within its own week; add --weeks-ago to
move it into another week.

Usage:
  weeklog edit 42 -H 2.5
  weeklog edit 42 -d tue -n "pairing with ops"`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *db.Store) error {
		entryID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid entry ID '%s'", args[0])
		}

		entry, err := store.Get(uint(entryID))
		if err != nil {
			return err
		}

		entry, err = applyEdits(cmd, entry)
		if err != nil {
			return err
		}

		updated, err := store.Update(entry.ID, entry)
		if err != nil {
			return fmt.Errorf("error updating entry: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated entry #%d: %s %sh on %s %s\n",
			updated.ID, updated.Project, parser.FormatHours(updated.Hours), updated.Weekday, updated.Date)
		return nil
	}),
}

// applyEdits overlays the changed flags onto entry and keeps its date in step with its weekday
func applyEdits(cmd *cobra.Command, entry models.Entry) (models.Entry, error) {
	flags := cmd.Flags()

	if flags.Changed("project") {
		v, _ := flags.GetString("project")
		entry.Project = parser.CompleteProject(v)
	}
	if flags.Changed("system") {
		v, _ := flags.GetString("system")
		entry.System = parser.NormalizeSystem(v)
	}
	if flags.Changed("hours") {
		v, _ := flags.GetString("hours")
		hours, err := parser.ParseHoursFloat(v)
		if err != nil {
			return entry, err
		}
		entry.Hours = hours
	}
	if flags.Changed("task") {
		v, _ := flags.GetString("task")
		entry.Task = parser.CompleteTask(v)
	}
	if flags.Changed("note") {
		v, _ := flags.GetString("note")
		entry.Notes = strings.TrimSpace(v)
	}

	if !flags.Changed("day") && !flags.Changed("weeks-ago") {
		return entry, nil
	}

	if flags.Changed("day") {
		v, _ := flags.GetString("day")
		day, err := parser.CompleteWeekday(v)
		if err != nil {
			return entry, err
		}
		entry.Weekday = day
	}

	var span week.Span
	if flags.Changed("weeks-ago") {
		weeksAgo, _ := flags.GetInt("weeks-ago")
		span = calendar.WeeksAgo(weeksAgo)
	} else {
		var err error
		span, err = calendar.SpanContaining(entry.Date)
		if err != nil {
			return entry, err
		}
	}

	date, err := span.DateFor(entry.Weekday)
	if err != nil {
		return entry, err
	}
	entry.Date = date
	return entry, nil
}

func init() {
	addEntryFlags(editCmd)
}
