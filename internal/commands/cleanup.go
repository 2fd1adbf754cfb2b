package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove records older than five years",
	Long: `Remove records older than five years from the database. The newest
10000 records are always kept, whatever their age.`,
	Run: withApp(func(cmd *cobra.Command, args []string) {
		removed, err := store.Cleanup()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		slog.Info("database cleaned up", "removed", removed)
		if removed == 0 {
			fmt.Println("Nothing to clean up")
			return
		}
		fmt.Printf("🧹 Removed %d old records\n", removed)
	}),
}
