package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/menkalian/worklock/internal/config"
	"github.com/menkalian/worklock/internal/db"
	"github.com/menkalian/worklock/internal/logging"
	"github.com/menkalian/worklock/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg     config.Config
	store   *db.Store
	tracker *session.Tracker
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "worklock",
	Short: "A CLI work time clock",
	Long: `worklock is a command-line time clock. Punch start, pause and end marks
through the day, correct them afterwards, and pull daily and monthly
reports straight from the terminal.`,
}

// initApp loads the configuration, sets up logging and opens the record
// store and the tracker. Panics when the store cannot be opened.
func initApp() {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			panic(err)
		}
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		fmt.Printf("Warning: %v (using defaults)\n", err)
	}

	if _, err := logging.Setup(logging.Config{
		Dir:        cfg.Log.Dir,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Printf("Warning: failed to set up logging: %v\n", err)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			panic(err)
		}
	}
	store, err = db.Open(dbPath)
	if err != nil {
		panic(err) // For now, panic on DB init failure
	}

	tracker, err = session.New(store, session.Options{
		AllowUncheckedEdits: !cfg.ValidateEdits,
		InitialDelay:        cfg.Refresh.InitialDelay,
		Interval:            cfg.Refresh.Interval,
	})
	if err != nil {
		panic(err)
	}

	slog.Debug("worklock initialized", "db", dbPath)
}

// withApp wraps a command function to initialize config, store and tracker first
func withApp(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initApp()
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the config file")

	// Add subcommands here
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
