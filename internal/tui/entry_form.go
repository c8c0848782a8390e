package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/parser"
	"github.com/balkashynov/weeklog/internal/week"
)

// EntryAdder stores new entries
type EntryAdder interface {
	Add(entry models.Entry) (models.Entry, error)
}

// Step represents the current step in the entry form
type Step int

const (
	StepProject Step = iota
	StepSystem
	StepHours
	StepTask
	StepDay
	StepNotes
	StepSave
)

var stepLabels = []string{"Project", "System", "Hours", "Task", "Day", "Notes", "Add"}

// EntryFormModel is the step-by-step form for logging one entry
type EntryFormModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	store    EntryAdder
	calendar week.Calculator
	weeksAgo int
	span     week.Span

	// standalone forms quit the program when done; embedded ones hand back to the week view
	standalone bool

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	confirmCancel bool
	created       models.Entry
}

// NewEntryForm creates a form that logs into the week weeksAgo weeks back
func NewEntryForm(store EntryAdder, calendar week.Calculator, weeksAgo int) EntryFormModel {
	inputs := make([]textinput.Model, StepSave)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepProject].Placeholder = "Project name or i / indirect t / indirect r (required)"
	inputs[StepProject].CharLimit = 100
	inputs[StepSystem].Placeholder = "System, e.g. ERP (Enter to skip)"
	inputs[StepSystem].CharLimit = 50
	inputs[StepHours].Placeholder = "Hours in steps of 0.25 (required)"
	inputs[StepHours].CharLimit = 10
	inputs[StepTask].Placeholder = "dev / sup or free text (Enter to skip if notes follow)"
	inputs[StepTask].CharLimit = 100
	inputs[StepNotes].Placeholder = "Notes (Enter to skip)"
	inputs[StepNotes].CharLimit = 500

	m := EntryFormModel{
		currentStep: StepProject,
		inputs:      inputs,
		store:       store,
		calendar:    calendar,
		weeksAgo:    weeksAgo,
		span:        calendar.WeeksAgo(weeksAgo),
	}

	if m.usesToday() {
		m.inputs[StepDay].Placeholder = fmt.Sprintf("Day of the week (Enter for today, %s)", calendar.TodayName())
	} else {
		m.inputs[StepDay].Placeholder = "Day of the week, e.g. mon (required)"
	}
	m.inputs[StepDay].CharLimit = 12

	m.inputs[StepProject].Focus()
	return m
}

// usesToday reports whether an empty day means today
func (m EntryFormModel) usesToday() bool {
	return m.weeksAgo == 0
}

// Init initializes the model
func (m EntryFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m EntryFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.update(msg)
}

func (m EntryFormModel) update(msg tea.Msg) (EntryFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := min(max((m.width*2/3)-10, 30), 80)
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.confirmCancel {
			m.confirmCancel = false
			switch msg.String() {
			case "y", "Y":
				return m.cancel()
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.cancel()

		case "esc":
			if !m.hasChanges() {
				return m.cancel()
			}
			m.confirmCancel = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if m.currentStep == StepSave {
				return m, nil
			}
			if err := m.checkStep(m.currentStep); err != nil {
				m.validationErr = err.Error()
				return m, nil
			}
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m EntryFormModel) cancel() (EntryFormModel, tea.Cmd) {
	m.cancelled = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

func (m EntryFormModel) value(step Step) string {
	return strings.TrimSpace(m.inputs[step].Value())
}

// hasChanges reports whether anything was typed
func (m EntryFormModel) hasChanges() bool {
	for i := range m.inputs {
		if m.value(Step(i)) != "" {
			return true
		}
	}
	return false
}

// checkStep validates the field of one step and normalises what the user typed
func (m *EntryFormModel) checkStep(step Step) error {
	switch step {
	case StepProject:
		project := parser.CompleteProject(m.value(StepProject))
		if project == "" {
			return fmt.Errorf("project is required")
		}
		m.inputs[StepProject].SetValue(project)

	case StepSystem:
		m.inputs[StepSystem].SetValue(parser.NormalizeSystem(m.value(StepSystem)))

	case StepHours:
		hours, err := parser.ParseHours(m.value(StepHours))
		if err != nil {
			return err
		}
		m.inputs[StepHours].SetValue(hours.String())

	case StepTask:
		m.inputs[StepTask].SetValue(parser.CompleteTask(m.value(StepTask)))

	case StepDay:
		day, err := m.day()
		if err != nil {
			return err
		}
		m.inputs[StepDay].SetValue(day)
	}
	return nil
}

// day resolves the Day field, defaulting to today in the current week
func (m EntryFormModel) day() (string, error) {
	typed := m.value(StepDay)
	if typed == "" || strings.EqualFold(typed, "today") {
		if !m.usesToday() {
			return "", fmt.Errorf("day is required for a past week")
		}
		return m.calendar.TodayName(), nil
	}
	day, err := parser.CompleteWeekday(typed)
	if err != nil {
		return "", fmt.Errorf("invalid day of week")
	}
	return day, nil
}

// entry builds the entry from the current field values
func (m EntryFormModel) entry() (models.Entry, error) {
	project := parser.CompleteProject(m.value(StepProject))
	if project == "" {
		return models.Entry{}, fmt.Errorf("project is required")
	}
	hours, err := parser.ParseHoursFloat(m.value(StepHours))
	if err != nil {
		return models.Entry{}, err
	}
	task := parser.CompleteTask(m.value(StepTask))
	notes := m.value(StepNotes)
	if task == "" && notes == "" {
		return models.Entry{}, fmt.Errorf("either a task or notes is required")
	}
	day, err := m.day()
	if err != nil {
		return models.Entry{}, err
	}
	date, err := m.span.DateFor(day)
	if err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		Date:    date,
		Weekday: day,
		Project: project,
		System:  parser.NormalizeSystem(m.value(StepSystem)),
		Hours:   hours,
		Task:    task,
		Notes:   notes,
	}
	return entry, entry.Validate()
}

// Ready reports whether the Add button is enabled
func (m EntryFormModel) Ready() bool {
	_, err := m.entry()
	return err == nil
}

// handleEnter processes the Enter key
func (m EntryFormModel) handleEnter() (EntryFormModel, tea.Cmd) {
	m.validationErr = ""

	if m.currentStep == StepSave {
		return m.save()
	}
	if err := m.checkStep(m.currentStep); err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	return m.nextStep()
}

// nextStep moves to the next step
func (m EntryFormModel) nextStep() (EntryFormModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m EntryFormModel) prevStep() (EntryFormModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep > StepProject {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// save writes the entry through the store
func (m EntryFormModel) save() (EntryFormModel, tea.Cmd) {
	entry, err := m.entry()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}

	created, err := m.store.Add(entry)
	if err != nil {
		m.err = err
		m.validationErr = err.Error()
		return m, nil
	}

	m.completed = true
	m.created = created
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the form
func (m EntryFormModel) View() string {
	if m.standalone && (m.completed || m.cancelled) {
		return ""
	}

	if m.width < 85 {
		return m.renderForm()
	}

	rightWidth := 44
	leftWidth := m.width - rightWidth - 4

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)
	rightStyle := lipgloss.NewStyle().
		Width(rightWidth).
		Padding(1)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderForm()),
		" ",
		rightStyle.Render(m.renderPreview()),
	)
}

// renderForm renders the step list, the current input and the help line
func (m EntryFormModel) renderForm() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(titleStyle.Render("Log time: " + m.calendar.Label(m.weeksAgo)))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	skipped := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep && m.value(step) != "":
			b.WriteString(done.Render("✓ " + label))
		case step < m.currentStep:
			b.WriteString(skipped.Render("  " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepProject:
		b.WriteString("Project\n")
		b.WriteString(m.renderSuggestions(parser.ProjectSuggestions))
	case StepTask:
		b.WriteString("Task\n")
		b.WriteString(m.renderSuggestions(parser.TaskSuggestions))
	case StepSave:
		b.WriteString(m.renderAddButton())
	default:
		b.WriteString(stepLabels[m.currentStep] + "\n")
	}
	if m.currentStep < StepSave {
		b.WriteString(m.inputs[m.currentStep].View())
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.validationErr))
	}
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	help := "Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"
	if m.confirmCancel {
		help = "Discard this entry? y/n"
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m EntryFormModel) renderSuggestions(suggestions []string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	return style.Render("Suggestions: "+strings.Join(suggestions, ", ")) + "\n"
}

func (m EntryFormModel) renderAddButton() string {
	if !m.Ready() {
		disabled := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDisabledText)).
			Padding(0, 2)
		return disabled.Render("Add") + "\n"
	}
	enabled := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Padding(0, 2)
	return enabled.Render("Add") + "  press Enter\n"
}

// renderPreview shows the entry as it would be stored
func (m EntryFormModel) renderPreview() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain)).Render("Preview"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("Project", parser.CompleteProject(m.value(StepProject)))
	row("System", parser.NormalizeSystem(m.value(StepSystem)))
	row("Hours", m.value(StepHours))
	row("Task", parser.CompleteTask(m.value(StepTask)))
	date := ""
	if day, err := m.day(); err == nil {
		date, _ = m.span.DateFor(day)
		row("Day", day)
	} else {
		row("Day", "")
	}
	row("Date", date)
	row("Notes", m.value(StepNotes))
	return b.String()
}

// Created returns the stored entry once the form completed
func (m EntryFormModel) Created() (models.Entry, bool) {
	return m.created, m.completed
}

// Cancelled reports whether the form was closed without adding
func (m EntryFormModel) Cancelled() bool {
	return m.cancelled
}
