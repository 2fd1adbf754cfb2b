package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for worklock",
	Long:  `Display detailed help for all worklock commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("worklock %s (commit %s, built %s)\n", version, commit, date)
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗██╗      ██████╗  ██████╗██╗  ██╗
██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██║     ██╔═══██╗██╔════╝██║ ██╔╝
██║ █╗ ██║██║   ██║██████╔╝█████╔╝ ██║     ██║   ██║██║     █████╔╝
██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██║     ██║   ██║██║     ██╔═██╗
╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗╚██████╔╝╚██████╗██║  ██╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝

worklock - CLI Work Time Clock

COMMANDS:

  start                   Punch in and start the clock
    --no-ui               Skip the interactive timer

  stop                    Punch out and stop the clock

  pause                   Pause or resume the running clock

  status                  Show the clock state and today's total
    --watch               Keep the timer on screen

  undo                    Remove the last record created in this session

  add work|pause          Insert a manual period
    --from                Start of the period (hh:mm)
    --until               End of the period (hh:mm)
    --date                Day of the period (dd/mm/yyyy, today, yesterday)

    Without --from/--until an interactive form opens.

    Example:
      worklock add work --from 08:00 --until 12:00 --date yesterday

  edit <id>               Correct the time of a record
    --time                New time (hh:mm)

    The original record is kept and superseded, not overwritten.

  delete <id>             Flag a record as deleted (alias: rm)

  day [date]              List one day's records and totals
    --detailed            Include superseded and deleted records

  month [mm/yyyy]         Show the monthly report

  cleanup                 Remove records older than five years

  version                 Show version information

TIMER KEYS:

  p             Pause / resume
  s             Stop the clock and exit
  u             Undo the last record of this session
  esc/q         Exit, clock keeps running

CONFIG:

  ~/.worklock/config.toml   validate_edits, report columns, refresh
                            intervals, database and log locations
`)
}
