package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, m EntryFormModel, keys ...string) EntryFormModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.update(key(k))
	}
	return m
}

func TestEntryForm_AddsEntryForToday(t *testing.T) {
	store := newFakeStore()
	m := NewEntryForm(store, testCalendar(), 0)

	m = fill(t, m,
		"indirect t", "enter",
		"crm", "enter",
		"1,5", "enter",
		"dev", "enter",
		"enter", // today
		"enter", // no notes
	)
	require.Equal(t, StepSave, m.currentStep)
	assert.True(t, m.Ready())

	m = fill(t, m, "enter")
	created, ok := m.Created()
	require.True(t, ok)

	stored := store.entries[created.ID]
	assert.Equal(t, "Indirect - training", stored.Project)
	assert.Equal(t, "CRM", stored.System)
	assert.Equal(t, 1.5, stored.Hours)
	assert.Equal(t, "Development", stored.Task)
	assert.Equal(t, "Wednesday", stored.Weekday)
	assert.Equal(t, "2026-10-14", stored.Date)
}

func TestEntryForm_RequiredFieldsBlockProgress(t *testing.T) {
	m := NewEntryForm(newFakeStore(), testCalendar(), 0)

	m = fill(t, m, "enter")
	assert.Equal(t, StepProject, m.currentStep)
	assert.Equal(t, "project is required", m.validationErr)

	m = fill(t, m, "tab")
	assert.Equal(t, StepProject, m.currentStep)

	m = fill(t, m, "Apollo", "enter", "enter", "1.1", "enter")
	assert.Equal(t, StepHours, m.currentStep)
	assert.Contains(t, m.validationErr, "multiple of 0.25")

	m.inputs[StepHours].SetValue("0.75")
	m = fill(t, m, "enter")
	assert.Equal(t, StepTask, m.currentStep)
	assert.Empty(t, m.validationErr)
}

func TestEntryForm_PastWeekNeedsDay(t *testing.T) {
	store := newFakeStore()
	m := NewEntryForm(store, testCalendar(), 1)

	m = fill(t, m, "Apollo", "enter", "enter", "8", "enter", "sup", "enter")
	require.Equal(t, StepDay, m.currentStep)

	m = fill(t, m, "enter")
	assert.Equal(t, StepDay, m.currentStep)
	assert.Equal(t, "day is required for a past week", m.validationErr)

	m = fill(t, m, "fri", "enter", "enter", "enter")
	created, ok := m.Created()
	require.True(t, ok)
	assert.Equal(t, "Friday", created.Weekday)
	assert.Equal(t, "2026-10-09", created.Date)
}

func TestEntryForm_AddDisabledWithoutTaskOrNotes(t *testing.T) {
	store := newFakeStore()
	m := NewEntryForm(store, testCalendar(), 0)

	m = fill(t, m, "Apollo", "enter", "enter", "1", "enter", "enter", "enter", "enter")
	require.Equal(t, StepSave, m.currentStep)
	assert.False(t, m.Ready())

	m = fill(t, m, "enter")
	_, ok := m.Created()
	assert.False(t, ok)
	assert.Equal(t, "either a task or notes is required", m.validationErr)
	assert.Empty(t, store.entries)

	// going back to fill in notes enables it
	m = fill(t, m, "shift+tab")
	require.Equal(t, StepNotes, m.currentStep)
	m = fill(t, m, "standup", "enter")
	assert.True(t, m.Ready())
	m = fill(t, m, "enter")
	created, ok := m.Created()
	require.True(t, ok)
	assert.Equal(t, "standup", created.Notes)
}

func TestEntryForm_EscAsksBeforeDiscarding(t *testing.T) {
	m := NewEntryForm(newFakeStore(), testCalendar(), 0)

	m = fill(t, m, "Apollo", "esc")
	assert.True(t, m.confirmCancel)
	assert.False(t, m.Cancelled())

	m = fill(t, m, "n")
	assert.False(t, m.confirmCancel)
	assert.False(t, m.Cancelled())
	assert.Equal(t, "Apollo", m.inputs[StepProject].Value())

	m = fill(t, m, "esc", "y")
	assert.True(t, m.Cancelled())
}
