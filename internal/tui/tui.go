package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/menkalian/worklock/internal/session"
)

// RunTimerTUI starts the interactive clock display
func RunTimerTUI(tracker *session.Tracker) error {
	model := NewTimerModel(tracker)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after the TUI closes
	if m, ok := finalModel.(TimerModel); ok {
		if m.stopping {
			fmt.Printf("⏹️  Clock stopped at %s\n", time.Now().Format("15:04:05"))
			fmt.Printf("Worked today: %02d:%02d\n", m.dayMinutes/60, m.dayMinutes%60)
		} else if m.exiting && m.started {
			fmt.Println("⏱️  Clock keeps running in the background")
		}
	}

	return nil
}

// RunPeriodFormTUI starts the interactive manual period form
func RunPeriodFormTUI(tracker *session.Tracker, kind PeriodKind, day time.Time) error {
	model := NewPeriodFormModel(tracker, kind, day)

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(PeriodFormModel); ok {
		if m.cancelled {
			fmt.Println("❌ Cancelled, nothing added.")
		} else if m.completed {
			fmt.Printf("✅ Added %s period %s - %s on %s\n",
				m.kind,
				m.from.Format("15:04"),
				m.until.Format("15:04"),
				m.day.Format("02/01/2006"))
		}
	}

	return nil
}
