package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/menkalian/worklock/internal/parse"
)

var editCmd = &cobra.Command{
	Use:   "edit [record-id]",
	Short: "Correct the time of a record",
	Long: `Correct the time of a record. The original is kept and replaced by a
correction record, so the change stays visible in 'worklock day --detailed'.

Examples:
  worklock edit 42 --time 08:30`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid record ID '%s'\n", args[0])
			return
		}

		record, err := store.Record(uint(id))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		timeFlag, _ := cmd.Flags().GetString("time")
		if timeFlag == "" {
			fmt.Println("Error: --time is required")
			return
		}
		newTime, err := parse.ParseClockOn(record.RecordedAt, timeFlag)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// The edit window is advisory: it bounds what a well-behaved edit
		// looks like, the correction itself is not blocked.
		lower, upper, err := tracker.AllowedEditRange(*record)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if newTime.Before(lower) || newTime.After(upper) {
			fmt.Printf("⚠️  %s is outside the usual window %s - %s, the day may become inconsistent\n",
				newTime.Format("15:04"),
				lower.Format("15:04"),
				upper.Format("15:04"))
		}

		if err := tracker.UpdateRecordTime(uint(id), newTime); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		slog.Info("record corrected", "id", id, "new_time", newTime)
		fmt.Printf("✏️  Record #%d moved from %s to %s\n",
			id,
			record.RecordedAt.Format("15:04"),
			newTime.Format("15:04"))
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete [record-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a record",
	Long:    "Flag a record as deleted. It disappears from reports but stays visible in 'worklock day --detailed'.",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid record ID '%s'\n", args[0])
			return
		}

		if _, err := store.Record(uint(id)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := tracker.DeleteRecord(uint(id)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		slog.Info("record deleted", "id", id)
		fmt.Printf("🗑️  Record #%d deleted\n", id)
	}),
}

func init() {
	editCmd.Flags().String("time", "", "New time for the record (hh:mm)")
}
