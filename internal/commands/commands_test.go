package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/weeklog/internal/db"
	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/week"
)

func fixedCalendar(t *testing.T) {
	t.Helper()
	saved := calendar
	now := time.Date(2026, time.October, 14, 9, 30, 0, 0, time.Local)
	calendar = week.Calculator{Now: func() time.Time { return now }}
	t.Cleanup(func() { calendar = saved })
}

// resetFlags clears values left on the shared command tree by an earlier run
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands_LogAndReportAWeek(t *testing.T) {
	fixedCalendar(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	dbPath := filepath.Join(dir, "data", "weeklog.db")

	out, err := run(t, "--config", cfg, "db", "set", dbPath, "--create")
	require.NoError(t, err)
	assert.Contains(t, out, "Database set to")

	out, err = run(t, "--config", cfg, "add", "-p", "Apollo", "-s", "erp", "-H", "1,5", "-t", "dev", "-d", "mon")
	require.NoError(t, err)
	assert.Contains(t, out, "Added entry #1: 1.5h on Monday 2026-10-12")

	out, err = run(t, "--config", cfg, "ls", "-o", "json")
	require.NoError(t, err)
	var entries []models.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "ERP", entries[0].System)
	assert.Equal(t, "Development", entries[0].Task)

	out, err = run(t, "--config", cfg, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Week of 2026-10-12")
	assert.Contains(t, out, "Apollo")

	out, err = run(t, "--config", cfg, "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted entry #1")
}

func TestCommands_RequireADatabase(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.json")

	_, err := run(t, "--config", cfg, "summary")
	require.ErrorIs(t, err, db.ErrNotConnected)
	assert.Contains(t, err.Error(), "weeklog db set")
}

func TestCommands_SetRejectsMissingDatabase(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.json")
	missing := filepath.Join(t.TempDir(), "nope.db")

	_, err := run(t, "--config", cfg, "db", "set", missing, "--create=false")
	require.ErrorIs(t, err, db.ErrDatabaseMissing)
}

// setupDatabase points a fresh config at a new database file
func setupDatabase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	_, err := run(t, "--config", cfg, "db", "set", filepath.Join(dir, "weeklog.db"), "--create")
	require.NoError(t, err)
	return cfg
}

func listWeek(t *testing.T, cfg, weeksAgo string) []models.Entry {
	t.Helper()
	out, err := run(t, "--config", cfg, "ls", "-w", weeksAgo, "-o", "json")
	require.NoError(t, err)
	var entries []models.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	return entries
}

func TestCommands_EditDayStaysInPastWeek(t *testing.T) {
	fixedCalendar(t)
	cfg := setupDatabase(t)

	out, err := run(t, "--config", cfg, "add", "-p", "A", "-H", "1", "-t", "dev", "-d", "mon", "-w", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Added entry #1: 1h on Monday 2026-10-05")

	out, err = run(t, "--config", cfg, "edit", "1", "-d", "fri")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated entry #1: A 1h on Friday 2026-10-09")

	entries := listWeek(t, cfg, "1")
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-10-09", entries[0].Date)
	assert.Equal(t, "Friday", entries[0].Weekday)
}

func TestCommands_EditWeeksAgoMovesEntry(t *testing.T) {
	fixedCalendar(t)
	cfg := setupDatabase(t)

	_, err := run(t, "--config", cfg, "add", "-p", "A", "-H", "1", "-t", "dev", "-d", "tue", "-w", "2")
	require.NoError(t, err)

	out, err := run(t, "--config", cfg, "edit", "1", "-w", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "on Tuesday 2026-10-13")
	assert.Empty(t, listWeek(t, cfg, "2"))

	out, err = run(t, "--config", cfg, "edit", "1", "-w", "1", "-d", "sun")
	require.NoError(t, err)
	assert.Contains(t, out, "on Sunday 2026-10-11")
}

func TestCommands_EditOnlyChangesGivenFlags(t *testing.T) {
	fixedCalendar(t)
	cfg := setupDatabase(t)

	_, err := run(t, "--config", cfg, "add", "-p", "Apollo", "-s", "erp", "-H", "1", "-t", "sup", "-d", "wed", "-n", "triage")
	require.NoError(t, err)

	_, err = run(t, "--config", cfg, "edit", "1", "-H", "2.5")
	require.NoError(t, err)

	entries := listWeek(t, cfg, "0")
	require.Len(t, entries, 1)
	got := entries[0]
	assert.Equal(t, 2.5, got.Hours)
	assert.Equal(t, "Apollo", got.Project)
	assert.Equal(t, "ERP", got.System)
	assert.Equal(t, "Support", got.Task)
	assert.Equal(t, "triage", got.Notes)
	assert.Equal(t, "Wednesday", got.Weekday)
	assert.Equal(t, "2026-10-14", got.Date)
}

func TestCommands_EditRejectsEmptyTaskAndNotes(t *testing.T) {
	fixedCalendar(t)
	cfg := setupDatabase(t)

	_, err := run(t, "--config", cfg, "add", "-p", "Apollo", "-H", "1", "-t", "dev", "-d", "mon")
	require.NoError(t, err)

	_, err = run(t, "--config", cfg, "edit", "1", "-t", "")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	entries := listWeek(t, cfg, "0")
	require.Len(t, entries, 1)
	assert.Equal(t, "Development", entries[0].Task)
}

func TestCommands_WeeksRejectsNegativeCount(t *testing.T) {
	fixedCalendar(t)

	var err error
	require.NotPanics(t, func() { _, err = run(t, "weeks", "-n", "-1") })
	assert.EqualError(t, err, "--count must be at least 1, got -1")

	out, err := run(t, "weeks", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "  0  Current Week (2026-10-12)\n  1  1 Week Ago (2026-10-05)\n", out)
}

func TestCommands_DBShowReportsStatus(t *testing.T) {
	cfg := setupDatabase(t)

	out, err := run(t, "--config", cfg, "db", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Config:   "+cfg)
	assert.Contains(t, out, "Status:   connected")

	empty := filepath.Join(t.TempDir(), "config.json")
	out, err = run(t, "--config", empty, "db", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:   not connected (no database path configured)")
}
