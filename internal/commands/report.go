package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/menkalian/worklock/internal/parse"
	"github.com/menkalian/worklock/internal/report"
)

var (
	reportHeaderStyle = lipgloss.NewStyle().Bold(true)
	reportTotalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	reportErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	reportMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List one day's records and totals",
	Long: `List one day's records and totals.

Examples:
  worklock day                  # today
  worklock day yesterday
  worklock day 15/12/2024 --detailed`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		input := ""
		if len(args) > 0 {
			input = args[0]
		}
		day, err := parse.ParseDate(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		detailed, _ := cmd.Flags().GetBool("detailed")
		detailed = detailed || cfg.Report.IncludeManual

		rows, totals, err := report.Day(store, day, detailed)
		if err != nil {
			fmt.Printf("Error fetching records: %v\n", err)
			return
		}

		if len(rows) == 0 {
			fmt.Printf("No records on %s\n", day.Format("02/01/2006"))
			return
		}

		fmt.Println(reportHeaderStyle.Render(day.Format("Monday, 02/01/2006")))
		if detailed {
			fmt.Printf("%-6s %-8s %-8s %-7s %-10s %s\n", "ID", "TIME", "KIND", "MANUAL", "CORRECTS", "DELETED")
			fmt.Println(strings.Repeat("-", 52))
		} else {
			fmt.Printf("%-6s %-8s %-8s\n", "ID", "TIME", "KIND")
			fmt.Println(strings.Repeat("-", 24))
		}

		for _, row := range rows {
			if detailed {
				corrects := ""
				if row.Corrects != nil {
					corrects = fmt.Sprintf("#%d", *row.Corrects)
				}
				line := fmt.Sprintf("%-6d %-8s %-8s %-7s %-10s %s",
					row.ID, row.Time.Format("15:04:05"), row.Kind,
					yesNo(row.Manual), corrects, yesNo(row.Deleted))
				if row.Deleted {
					line = reportMutedStyle.Render(line)
				}
				fmt.Println(line)
			} else {
				fmt.Printf("%-6d %-8s %-8s\n", row.ID, row.Time.Format("15:04:05"), row.Kind)
			}
		}

		fmt.Println()
		fmt.Println(reportTotalStyle.Render(fmt.Sprintf("Worked: %s   Paused: %s",
			formatMinutes(totals.WorkMinutes), formatMinutes(totals.PauseMinutes))))
		if totals.HasError {
			fmt.Println(reportErrorStyle.Render("⚠️  Records are inconsistent, totals are a best effort"))
		}
	}),
}

var monthCmd = &cobra.Command{
	Use:   "month [mm/yyyy]",
	Short: "Show the monthly report",
	Long: `Show the per-day work totals of one month.

Examples:
  worklock month          # current month
  worklock month 03/2026`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		input := ""
		if len(args) > 0 {
			input = args[0]
		}
		year, month, err := parse.ParseMonth(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		summary, err := report.Month(store, year, month)
		if err != nil {
			fmt.Printf("Error fetching records: %v\n", err)
			return
		}

		if len(summary.Days) == 0 {
			fmt.Printf("No records in %s %d\n", month, year)
			return
		}

		fmt.Println(reportHeaderStyle.Render(fmt.Sprintf("%s %d", month, year)))

		header := fmt.Sprintf("%-12s %-9s", "DATE", "WORKED")
		if cfg.Report.IncludePause {
			header += fmt.Sprintf(" %-9s", "PAUSED")
		}
		if cfg.Report.IncludeErrors {
			header += " ERRORS"
		}
		fmt.Println(header)
		fmt.Println(strings.Repeat("-", len(header)))

		for _, dayRow := range summary.Days {
			line := fmt.Sprintf("%-12s %-9s", dayRow.Date.Format("02/01/2006"), formatMinutes(dayRow.WorkMinutes))
			if cfg.Report.IncludePause {
				line += fmt.Sprintf(" %-9s", formatMinutes(dayRow.PauseMinutes))
			}
			if cfg.Report.IncludeErrors && dayRow.HasError {
				line += " ⚠️"
			}
			fmt.Println(line)
		}

		fmt.Println()
		total := fmt.Sprintf("Total worked: %s", formatMinutes(summary.TotalWorkMinutes))
		if cfg.Report.IncludePause {
			total += fmt.Sprintf("   Total paused: %s", formatMinutes(summary.TotalPauseMinutes))
		}
		fmt.Println(reportTotalStyle.Render(total))
		if summary.HasError {
			fmt.Println(reportErrorStyle.Render("⚠️  Some days are inconsistent, totals are a best effort"))
		}
	}),
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	dayCmd.Flags().Bool("detailed", false, "Include superseded and deleted records")
}
