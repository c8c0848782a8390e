package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/weeklog/internal/config"
	"github.com/balkashynov/weeklog/internal/models"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hours.db")
	require.NoError(t, CreateDatabase(path))

	s := New(config.Config{DatabasePath: path}, opts...)
	require.NoError(t, s.LastError())
	require.True(t, s.Connected())
	t.Cleanup(func() { s.Close() })
	return s, path
}

// rawDB opens path without running migrations, to build legacy layouts
func rawDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func entry(date, weekday, project string, hours float64) models.Entry {
	return models.Entry{
		Date:    date,
		Weekday: weekday,
		Project: project,
		System:  "ERP",
		Hours:   hours,
		Task:    "Development",
		Notes:   "",
	}
}

// =============================================================================
// CONNECTION
// =============================================================================

func TestNew_WithoutPathIsDisconnected(t *testing.T) {
	s := New(config.Config{})

	assert.False(t, s.Connected())
	assert.ErrorIs(t, s.LastError(), ErrNoPath)
}

func TestConnect_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	s := New(config.Config{DatabasePath: path})

	assert.False(t, s.Connected())
	assert.ErrorIs(t, s.LastError(), ErrDatabaseMissing)
	assert.Equal(t, path, s.Path())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "connect must not create the file")
}

func TestConnect_EmptyPath(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Connect("")
	assert.ErrorIs(t, err, ErrNoPath)
	assert.False(t, s.Connected())
}

func TestConnect_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite database, just some text padding it out"), 0644))

	s := New(config.Config{DatabasePath: path})

	assert.False(t, s.Connected())
	assert.Error(t, s.LastError())
}

func TestConnect_RecoversWithNewPath(t *testing.T) {
	s := New(config.Config{DatabasePath: filepath.Join(t.TempDir(), "missing.db")})
	require.False(t, s.Connected())

	path := filepath.Join(t.TempDir(), "hours.db")
	require.NoError(t, CreateDatabase(path))
	require.NoError(t, s.Connect(path))
	defer s.Close()

	assert.True(t, s.Connected())
	assert.NoError(t, s.LastError())
}

func TestDisconnected_OperationsFailSafely(t *testing.T) {
	s := New(config.Config{})

	_, err := s.Add(entry("2026-10-12", "Monday", "X", 1))
	assert.ErrorIs(t, err, ErrNotConnected)

	entries, err := s.List("2026-10-12", "2026-10-18")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	rows, err := s.Summary("2026-10-12", "2026-10-18")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Empty(t, rows)

	_, err = s.Update(1, entry("2026-10-12", "Monday", "X", 1))
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, s.Delete(1), ErrNotConnected)
	_, err = s.Get(1)
	assert.ErrorIs(t, err, ErrNotConnected)
}

// =============================================================================
// CRUD
// =============================================================================

func TestAdd_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	in := models.Entry{
		Date:    "2026-10-14",
		Weekday: "Wednesday",
		Project: "Indirect - training",
		System:  "CRM",
		Hours:   2.75,
		Task:    "Support",
		Notes:   "onboarding",
	}
	added, err := s.Add(in)
	require.NoError(t, err)
	require.NotZero(t, added.ID)

	entries, err := s.List("2026-10-12", "2026-10-18")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, added.ID, got.ID)
	got.ID = 0
	assert.Equal(t, in, got)
}

func TestAdd_RejectsInvalidBeforeWrite(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Add(entry("2026-10-12", "Monday", "X", 1.1))
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "hours", verr.Field)

	_, err = s.Add(entry("2026-10-12", "Monday", "X", 1.0))
	require.NoError(t, err)

	entries, err := s.List("2026-10-12", "2026-10-12")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAdd_AssignsDistinctIDs(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Add(entry("2026-10-12", "Monday", "X", 1))
	require.NoError(t, err)
	b, err := s.Add(entry("2026-10-12", "Monday", "X", 1))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestList_RangeIsInclusiveAndOrdered(t *testing.T) {
	s, _ := newTestStore(t)

	for _, e := range []models.Entry{
		entry("2026-10-18", "Sunday", "A", 1),
		entry("2026-10-11", "Sunday", "before", 1),
		entry("2026-10-12", "Monday", "B", 1),
		entry("2026-10-19", "Monday", "after", 1),
		entry("2026-10-14", "Wednesday", "C", 1),
	} {
		_, err := s.Add(e)
		require.NoError(t, err)
	}

	entries, err := s.List("2026-10-12", "2026-10-18")
	require.NoError(t, err)

	var dates []string
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []string{"2026-10-12", "2026-10-14", "2026-10-18"}, dates)
}

func TestSummary_GroupsByProjectAndWeekday(t *testing.T) {
	s, _ := newTestStore(t)

	for _, e := range []models.Entry{
		entry("2026-10-12", "Monday", "X", 1.0),
		entry("2026-10-12", "Monday", "X", 2.5),
		entry("2026-10-13", "Tuesday", "X", 0.5),
		entry("2026-10-12", "Monday", "A", 4),
		entry("2026-10-05", "Monday", "X", 8),
	} {
		_, err := s.Add(e)
		require.NoError(t, err)
	}

	rows, err := s.Summary("2026-10-12", "2026-10-18")
	require.NoError(t, err)

	assert.Equal(t, []models.SummaryRow{
		{Project: "A", Weekday: "Monday", Hours: 4},
		{Project: "X", Weekday: "Monday", Hours: 3.5},
		{Project: "X", Weekday: "Tuesday", Hours: 0.5},
	}, rows)
}

func TestUpdate_OverwritesAllFields(t *testing.T) {
	s, _ := newTestStore(t)

	added, err := s.Add(entry("2026-10-12", "Monday", "X", 1))
	require.NoError(t, err)

	changed := models.Entry{
		Date:    "2026-10-16",
		Weekday: "Friday",
		Project: "Y",
		System:  "HR",
		Hours:   3.25,
		Task:    "",
		Notes:   "retro",
	}
	updated, err := s.Update(added.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, added.ID, updated.ID)

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	changed.ID = added.ID
	assert.Equal(t, changed, got)
}

func TestUpdate_MissingID(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Update(42, entry("2026-10-12", "Monday", "X", 1))
	assert.ErrorIs(t, err, ErrEntryNotFound)

	lenient, _ := newTestStore(t, WithMissingIDPolicy(MissingIDIgnore))
	_, err = lenient.Update(42, entry("2026-10-12", "Monday", "X", 1))
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)

	keep, err := s.Add(entry("2026-10-12", "Monday", "keep", 1))
	require.NoError(t, err)
	drop, err := s.Add(entry("2026-10-13", "Tuesday", "drop", 1))
	require.NoError(t, err)

	require.NoError(t, s.Delete(drop.ID))

	entries, err := s.List("2026-10-12", "2026-10-18")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)

	_, err = s.Get(drop.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDelete_MissingIDLeavesOtherRows(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Add(entry("2026-10-12", "Monday", "keep", 1))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(999), ErrEntryNotFound)

	lenient, _ := newTestStore(t, WithMissingIDPolicy(MissingIDIgnore))
	assert.NoError(t, lenient.Delete(999))

	entries, err := s.List("2026-10-12", "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMutations_SurviveReconnect(t *testing.T) {
	s, path := newTestStore(t)

	added, err := s.Add(entry("2026-10-12", "Monday", "X", 1))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Connect(path))

	got, err := s.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Project)
}
