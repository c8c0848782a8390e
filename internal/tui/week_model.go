package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/parser"
	"github.com/balkashynov/weeklog/internal/report"
	"github.com/balkashynov/weeklog/internal/week"
)

// EntryStore is the slice of the store the week view needs
type EntryStore interface {
	EntryAdder
	List(start, end string) ([]models.Entry, error)
	Summary(start, end string) ([]models.SummaryRow, error)
	Update(id uint, entry models.Entry) (models.Entry, error)
	Delete(id uint) error
}

// Column identifies a table column
type Column int

const (
	ColProject Column = iota
	ColSystem
	ColHours
	ColTask
	ColDay
	ColDate
	ColNotes
)

var columnTitles = []string{"Project", "System", "Hours", "Task", "Day", "Date", "Notes"}

// editableColumns are the columns tab cycles through; Date follows Day
var editableColumns = []Column{ColProject, ColSystem, ColHours, ColTask, ColDay, ColNotes}

// WeekModel is the TUI model for browsing and editing one week of entries
type WeekModel struct {
	width  int
	height int

	store    EntryStore
	calendar week.Calculator
	weeksAgo int
	span     week.Span

	entries []models.Entry
	table   table.Model

	// In-place editing
	column  int // index into editableColumns
	editing bool
	input   textinput.Model

	confirmDelete bool
	showSummary   bool
	form          *EntryFormModel
	pivot         report.Pivot

	status string
	err    error
}

// NewWeekModel creates a week view starting weeksAgo weeks back
func NewWeekModel(store EntryStore, calendar week.Calculator, weeksAgo int) WeekModel {
	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain))
	t.SetStyles(styles)

	input := textinput.New()
	input.CharLimit = 200
	input.Width = 40
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := WeekModel{
		store:    store,
		calendar: calendar,
		weeksAgo: max(weeksAgo, 0),
		table:    t,
		input:    input,
	}
	m.reload()
	return m
}

func tableColumns() []table.Column {
	widths := []int{22, 8, 6, 12, 10, 10, 30}
	cols := make([]table.Column, len(columnTitles))
	for i, title := range columnTitles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// reload fetches the selected week from the store
func (m *WeekModel) reload() {
	m.span = m.calendar.WeeksAgo(m.weeksAgo)

	entries, err := m.store.List(m.span.Start(), m.span.End())
	if err != nil {
		m.err = err
		entries = nil
	}
	m.entries = entries

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.Project,
			e.System,
			parser.FormatHours(e.Hours),
			e.Task,
			e.Weekday,
			e.Date,
			e.Notes,
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}

	if m.showSummary {
		summary, err := m.store.Summary(m.span.Start(), m.span.End())
		if err != nil {
			m.err = err
		}
		m.pivot = report.BuildPivot(m.span, summary)
	}
}

// selected returns the entry under the cursor
func (m WeekModel) selected() (models.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return models.Entry{}, false
	}
	return m.entries[i], true
}

// Init initializes the model
func (m WeekModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m WeekModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// title(2) + summary toggle hint + status + help + borders
		m.table.SetHeight(max(msg.Height-10, 3))
		if m.form != nil {
			form, _ := m.form.update(msg)
			m.form = &form
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.handleFormKeys(msg)
		}
		if m.editing {
			return m.handleEditKeys(msg)
		}
		if m.confirmDelete {
			return m.handleDeleteConfirm(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "left", "h":
			m.weeksAgo++
			m.status, m.err = "", nil
			m.reload()
			return m, nil

		case "right", "l":
			if m.weeksAgo > 0 {
				m.weeksAgo--
				m.status, m.err = "", nil
				m.reload()
			}
			return m, nil

		case "tab":
			m.column = (m.column + 1) % len(editableColumns)
			return m, nil

		case "shift+tab":
			m.column = (m.column + len(editableColumns) - 1) % len(editableColumns)
			return m, nil

		case "enter", "e":
			return m.startEdit()

		case "a":
			form := NewEntryForm(m.store, m.calendar, m.weeksAgo)
			form.width, form.height = m.width, m.height
			m.form = &form
			m.status, m.err = "", nil
			return m, form.Init()

		case "d", "delete":
			if _, ok := m.selected(); ok {
				m.confirmDelete = true
			}
			return m, nil

		case "s":
			m.showSummary = !m.showSummary
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleFormKeys drives the add form until it completes or is cancelled
func (m WeekModel) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.update(msg)
	if created, ok := form.Created(); ok {
		m.form = nil
		m.status = fmt.Sprintf("Added entry #%d", created.ID)
		m.reload()
		return m, nil
	}
	if form.Cancelled() {
		m.form = nil
		m.status = "Add cancelled"
		return m, nil
	}
	m.form = &form
	return m, cmd
}

func (m WeekModel) startEdit() (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.editing = true
	m.err = nil
	m.input.SetValue(cellValue(entry, editableColumns[m.column]))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m WeekModel) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.editing = false
		m.input.Blur()
		m.commitEdit(m.input.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit validates the edited cell and writes the whole row back
func (m *WeekModel) commitEdit(value string) {
	entry, ok := m.selected()
	if !ok {
		return
	}

	column := editableColumns[m.column]
	updated, err := ApplyCell(entry, m.span, column, value)
	if err != nil {
		m.err = err
		return
	}

	if _, err := m.store.Update(entry.ID, updated); err != nil {
		m.err = err
		return
	}

	m.status = fmt.Sprintf("Updated %s of entry #%d", columnTitles[column], entry.ID)
	m.reload()
}

func (m WeekModel) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	if msg.String() != "y" && msg.String() != "Y" {
		m.status = "Delete cancelled"
		return m, nil
	}

	entry, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.store.Delete(entry.ID); err != nil {
		m.err = err
		return m, nil
	}

	m.status = fmt.Sprintf("Deleted entry #%d", entry.ID)
	m.reload()
	return m, nil
}

// ApplyCell returns entry with one column replaced by the typed value.
// Editing the day moves the date to that weekday of span.
func ApplyCell(entry models.Entry, span week.Span, column Column, value string) (models.Entry, error) {
	switch column {
	case ColProject:
		project := parser.CompleteProject(value)
		if project == "" {
			return entry, fmt.Errorf("project must not be empty")
		}
		entry.Project = project

	case ColSystem:
		entry.System = parser.NormalizeSystem(value)

	case ColHours:
		hours, err := parser.ParseHoursFloat(value)
		if err != nil {
			return entry, err
		}
		entry.Hours = hours

	case ColTask:
		task, err := parser.ValidateTaskChoice(value)
		if err != nil {
			return entry, err
		}
		entry.Task = task

	case ColDay:
		day, err := parser.CompleteWeekday(value)
		if err != nil {
			return entry, fmt.Errorf("invalid day of week")
		}
		date, err := span.DateFor(day)
		if err != nil {
			return entry, err
		}
		entry.Weekday = day
		entry.Date = date

	case ColNotes:
		entry.Notes = strings.TrimSpace(value)

	default:
		return entry, fmt.Errorf("%s cannot be edited", columnTitles[column])
	}

	return entry, entry.Validate()
}

func cellValue(e models.Entry, column Column) string {
	switch column {
	case ColProject:
		return e.Project
	case ColSystem:
		return e.System
	case ColHours:
		return parser.FormatHours(e.Hours)
	case ColTask:
		return e.Task
	case ColDay:
		return e.Weekday
	case ColDate:
		return e.Date
	case ColNotes:
		return e.Notes
	}
	return ""
}

// View renders the model
func (m WeekModel) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(titleStyle.Render(m.calendar.Label(m.weeksAgo)))
	b.WriteString("\n\n")

	if m.showSummary {
		b.WriteString(m.renderSummary())
	} else if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No entries for this week"))
	} else {
		tableStyle := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder))
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m WeekModel) renderSummary() string {
	var sb strings.Builder
	if err := report.RenderPivot(&sb, m.pivot); err != nil {
		return err.Error()
	}
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Padding(0, 1)
	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m WeekModel) renderStatusLine() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	switch {
	case m.editing:
		column := columnTitles[editableColumns[m.column]]
		return labelStyle.Render(column+": ") + m.input.View()
	case m.confirmDelete:
		entry, _ := m.selected()
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(true)
		return warn.Render(fmt.Sprintf("Delete entry #%d (%s, %sh)? y/n", entry.ID, entry.Project, parser.FormatHours(entry.Hours)))
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: " + m.err.Error())
	case m.status != "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.status)
	}
	return labelStyle.Render("Edit column: " + columnTitles[editableColumns[m.column]])
}

// renderHelpBar renders the help bar with hotkey hints
func (m WeekModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)

	helpText := "↑/↓ nav · ←/→ week · tab column · enter edit · a add · d delete · s summary · q quit"
	if m.editing {
		helpText = "enter save · esc cancel"
	}
	return helpStyle.Render(helpText)
}
