package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/menkalian/worklock/internal/parse"
	"github.com/menkalian/worklock/internal/session"
)

// PeriodKind selects what the manual period form inserts.
type PeriodKind int

const (
	PeriodWork PeriodKind = iota
	PeriodPause
)

func (k PeriodKind) String() string {
	if k == PeriodPause {
		return "pause"
	}
	return "work"
}

const (
	fieldFrom = iota
	fieldUntil
)

// PeriodFormModel is the TUI model for entering a manual period
type PeriodFormModel struct {
	tracker *session.Tracker
	kind    PeriodKind
	day     time.Time

	inputs       []textinput.Model
	currentField int
	width        int
	height       int

	// State
	completed     bool
	cancelled     bool
	validationErr string
	from          time.Time
	until         time.Time
}

// NewPeriodFormModel creates a manual period entry form for the given day
func NewPeriodFormModel(tracker *session.Tracker, kind PeriodKind, day time.Time) PeriodFormModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 12
		inputs[i].Placeholder = "hh:mm"
		inputs[i].CharLimit = 5

		// Apply color scheme
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}
	inputs[fieldFrom].Focus()

	return PeriodFormModel{
		tracker: tracker,
		kind:    kind,
		day:     day,
		inputs:  inputs,
	}
}

// Init initializes the form
func (m PeriodFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m PeriodFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.currentField].Blur()
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.currentField = (m.currentField + len(m.inputs) - 1) % len(m.inputs)
			} else {
				m.currentField = (m.currentField + 1) % len(m.inputs)
			}
			m.inputs[m.currentField].Focus()
			return m, nil

		case "enter":
			if m.currentField < len(m.inputs)-1 {
				m.inputs[m.currentField].Blur()
				m.currentField++
				m.inputs[m.currentField].Focus()
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.currentField], cmd = m.inputs[m.currentField].Update(msg)
	return m, cmd
}

// submit validates the inputs and inserts the period
func (m PeriodFormModel) submit() (tea.Model, tea.Cmd) {
	from, err := parse.ParseClockOn(m.day, m.inputs[fieldFrom].Value())
	if err != nil {
		m.validationErr = fmt.Sprintf("from: %v", err)
		return m, nil
	}
	until, err := parse.ParseClockOn(m.day, m.inputs[fieldUntil].Value())
	if err != nil {
		m.validationErr = fmt.Sprintf("until: %v", err)
		return m, nil
	}
	if !until.After(from) {
		m.validationErr = "the period must end after it starts"
		return m, nil
	}

	if m.kind == PeriodWork {
		err = m.tracker.AddManualWorkPeriod(from, until)
	} else {
		err = m.tracker.AddManualPause(from, until)
	}
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}

	m.validationErr = ""
	m.completed = true
	m.from = from
	m.until = until
	return m, tea.Quit
}

// View renders the form
func (m PeriodFormModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain))
	b.WriteString(titleStyle.Render(fmt.Sprintf("Add manual %s period", m.kind)))
	b.WriteString("\n")

	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	b.WriteString(dayStyle.Render(m.day.Format("Monday, 02/01/2006")))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(labelStyle.Render("From "))
	b.WriteString(m.inputs[fieldFrom].View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Until"))
	b.WriteString(" ")
	b.WriteString(m.inputs[fieldUntil].View())
	b.WriteString("\n\n")

	if m.validationErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
		b.WriteString(errStyle.Render("✗ " + m.validationErr))
		b.WriteString("\n\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("tab/enter next field · enter save · esc cancel"))

	return b.String()
}
