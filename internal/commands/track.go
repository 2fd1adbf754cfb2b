package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/menkalian/worklock/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Punch in and start the clock",
	Long: `Punch in and start the clock. Opens the interactive timer by default,
use --no-ui for a simple start.

Examples:
  worklock start         # Start the clock with the interactive timer
  worklock start --no-ui # Start the clock and return to the shell`,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		alreadyRunning := tracker.IsStarted()
		if err := tracker.Start(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if alreadyRunning {
			fmt.Println("⏱️  Clock is already running")
		}
		slog.Info("tracking started", "already_running", alreadyRunning)

		// Check if --no-ui flag is set
		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			if !alreadyRunning {
				fmt.Printf("⏱️  Clock started at %s\n", time.Now().Format("15:04:05"))
			}
		} else {
			// Interactive timer UI
			if err := tui.RunTimerTUI(tracker); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Punch out and stop the clock",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !tracker.IsStarted() {
			fmt.Println("No running clock to stop")
			return
		}

		if err := tracker.End(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		slog.Info("tracking stopped")

		tracker.Recalculate()
		fmt.Printf("⏹️  Clock stopped at %s\n", time.Now().Format("15:04:05"))
		fmt.Printf("Worked today: %s\n", formatMinutes(tracker.CurrentDayMinutes()))
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause or resume the running clock",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !tracker.IsStarted() {
			fmt.Println("No running clock. Start one with 'worklock start'")
			return
		}

		if err := tracker.TogglePause(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		slog.Info("pause toggled", "paused", tracker.IsPaused())

		if tracker.IsPaused() {
			fmt.Printf("⏸️  Paused at %s\n", time.Now().Format("15:04:05"))
		} else {
			fmt.Printf("▶️  Resumed at %s\n", time.Now().Format("15:04:05"))
		}
	}),
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the last record created in this session",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if !tracker.AllowUndo() {
			// Undo only covers records created by the running process, so
			// outside the interactive timer there is usually nothing here.
			fmt.Println("Nothing to undo in this session. Use 'worklock delete <id>' for stored records.")
			return
		}

		if err := tracker.Undo(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("↩️  Last record removed")
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current clock state and today's total",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if err := tui.RunTimerTUI(tracker); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		tracker.Recalculate()

		switch {
		case tracker.IsPaused():
			fmt.Println("⏸️  Clock is paused")
		case tracker.IsStarted():
			fmt.Println("⏱️  Clock is running")
		default:
			fmt.Println("No running clock")
		}

		fmt.Printf("Worked today: %s\n", formatMinutes(tracker.CurrentDayMinutes()))
		if tracker.CurrentDayHasError() {
			fmt.Println("⚠️  Today's records are inconsistent. Check 'worklock day' and fix them.")
		}
	}),
}

func init() {
	// Add --no-ui flag to start command
	startCmd.Flags().Bool("no-ui", false, "Start the clock without the interactive timer")
	statusCmd.Flags().Bool("watch", false, "Keep the timer on screen")
}

// formatMinutes formats whole minutes in a human-readable way
func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
