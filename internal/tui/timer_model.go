package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/menkalian/worklock/internal/session"
)

// TimerModel is the TUI model for the live clock display
type TimerModel struct {
	width   int
	height  int
	tracker *session.Tracker

	// Displayed state, refreshed every tick
	started     bool
	paused      bool
	allowUndo   bool
	dayMinutes  int
	dayHasError bool

	// UI state
	stopping bool // True when the user pressed S and the clock was stopped
	exiting  bool // True when the user pressed ESC/Q and the clock keeps running
	err      error
}

// timerTickMsg is sent every second to refresh the display
type timerTickMsg struct{}

// NewTimerModel creates a new timer TUI model
func NewTimerModel(tracker *session.Tracker) TimerModel {
	m := TimerModel{tracker: tracker}
	m.refresh()
	return m
}

// refresh pulls the current state out of the tracker
func (m *TimerModel) refresh() {
	m.tracker.Recalculate()
	m.started = m.tracker.IsStarted()
	m.paused = m.tracker.IsPaused()
	m.allowUndo = m.tracker.AllowUndo()
	m.dayMinutes = m.tracker.CurrentDayMinutes()
	m.dayHasError = m.tracker.CurrentDayHasError()
}

// Init starts the ticker
func (m TimerModel) Init() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.refresh()
		if !m.stopping && !m.exiting {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return timerTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			if err := m.tracker.TogglePause(); err != nil {
				m.err = err
			}
			m.refresh()
			return m, nil

		case "u":
			if err := m.tracker.Undo(); err != nil {
				m.err = err
			}
			m.refresh()
			return m, nil

		case "s":
			if err := m.tracker.End(); err != nil {
				m.err = err
				return m, nil
			}
			m.refresh()
			m.stopping = true
			return m, tea.Quit

		case "esc", "q":
			m.exiting = true
			return m, tea.Quit

		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer
func (m TimerModel) View() string {
	var b strings.Builder

	b.WriteString("\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(titleStyle.Render("worklock"))
	b.WriteString("\n\n")

	// Clock state line
	stateText := "⏱️  WORKING"
	stateColor := ColorAccentBright
	if !m.started {
		stateText = "⏹️  STOPPED"
		stateColor = ColorSecondaryText
	} else if m.paused {
		stateText = "⏸️  PAUSED"
		stateColor = ColorWarning
	}
	stateStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(stateColor)).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(stateStyle.Render(stateText))
	b.WriteString("\n\n")

	// Today's total in a bordered box
	clockStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 4)
	clock := fmt.Sprintf("Worked today   %02d:%02d", m.dayMinutes/60, m.dayMinutes%60)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, clockStyle.Render(clock)))
	b.WriteString("\n\n")

	if m.dayHasError {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(m.width)
		b.WriteString(errStyle.Render("⚠️  Today's records are inconsistent"))
		b.WriteString("\n\n")
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(m.width)
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "p pause · s stop & save · esc/q exit (keep running) · ctrl+c force quit"
	if m.allowUndo {
		helpText = "p pause · u undo · s stop & save · esc/q exit (keep running)"
	}

	return helpStyle.Render(helpText)
}
