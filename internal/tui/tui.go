package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/weeklog/internal/parser"
	"github.com/balkashynov/weeklog/internal/week"
)

// RunWeekTUI starts the interactive week view
func RunWeekTUI(store EntryStore, calendar week.Calculator, weeksAgo int) error {
	model := NewWeekModel(store, calendar, weeksAgo)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunEntryForm starts the interactive add form and reports the outcome to w
func RunEntryForm(store EntryAdder, calendar week.Calculator, weeksAgo int, w io.Writer) error {
	model := NewEntryForm(store, calendar, weeksAgo)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(EntryFormModel)
	if !ok {
		return nil
	}
	if created, done := m.Created(); done {
		fmt.Fprintf(w, "Added entry #%d: %s %sh on %s %s\n",
			created.ID, created.Project, parser.FormatHours(created.Hours), created.Weekday, created.Date)
		return nil
	}
	if m.err != nil {
		return m.err
	}
	fmt.Fprintln(w, "Entry not added.")
	return nil
}
