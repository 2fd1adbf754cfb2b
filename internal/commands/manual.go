package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/menkalian/worklock/internal/parse"
	"github.com/menkalian/worklock/internal/session"
	"github.com/menkalian/worklock/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Insert a manual work or pause period",
	Long: `Insert a work or pause period that was not recorded live.

Examples:
  worklock add work --from 08:00 --until 12:00
  worklock add work --from 08:00 --until 12:00 --date 15/12/2024
  worklock add pause --from 12:00 --until 12:30
  worklock add work                       # interactive form`,
}

var addWorkCmd = &cobra.Command{
	Use:   "work",
	Short: "Insert a manual work period",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		runManualAdd(cmd, tui.PeriodWork)
	}),
}

var addPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Insert a manual pause",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		runManualAdd(cmd, tui.PeriodPause)
	}),
}

func runManualAdd(cmd *cobra.Command, kind tui.PeriodKind) {
	dateFlag, _ := cmd.Flags().GetString("date")
	day, err := parse.ParseDate(dateFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fromFlag, _ := cmd.Flags().GetString("from")
	untilFlag, _ := cmd.Flags().GetString("until")
	if fromFlag == "" || untilFlag == "" {
		// Interactive form
		if err := tui.RunPeriodFormTUI(tracker, kind, day); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	from, err := parse.ParseClockOn(day, fromFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	until, err := parse.ParseClockOn(day, untilFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if kind == tui.PeriodWork {
		err = tracker.AddManualWorkPeriod(from, until)
	} else {
		err = tracker.AddManualPause(from, until)
	}
	if err != nil {
		fmt.Printf("Error: %s\n", manualAddErrorText(err))
		return
	}

	slog.Info("manual period added",
		"kind", kind.String(),
		"from", from.Format(time.RFC3339),
		"until", until.Format(time.RFC3339))
	fmt.Printf("✅ Added %s period %s - %s on %s\n",
		kind.String(),
		from.Format("15:04"),
		until.Format("15:04"),
		day.Format("02/01/2006"))
}

// manualAddErrorText maps the tracker's rejection reasons to actionable
// messages.
func manualAddErrorText(err error) string {
	switch {
	case errors.Is(err, session.ErrCrossDayPeriod):
		return "the period must start and end on the same day"
	case errors.Is(err, session.ErrDayHasError):
		return "that day already has inconsistent records; fix them first with 'worklock day' and 'worklock edit'"
	case errors.Is(err, session.ErrWouldCauseError):
		return "the period overlaps existing records and would make the day inconsistent"
	}
	return err.Error()
}

func init() {
	for _, cmd := range []*cobra.Command{addWorkCmd, addPauseCmd} {
		cmd.Flags().String("from", "", "Start of the period (hh:mm)")
		cmd.Flags().String("until", "", "End of the period (hh:mm)")
		cmd.Flags().String("date", "", "Day of the period (dd/mm/yyyy, today, yesterday)")
	}

	addCmd.AddCommand(addWorkCmd)
	addCmd.AddCommand(addPauseCmd)
}
