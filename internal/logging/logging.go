// Package logging sets up the process-wide slog logger. Log entries go to
// a rotating file so the terminal stays reserved for command output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation parameters (lumberjack semantics).
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Config describes the log file destination and rotation.
type Config struct {
	Dir        string // base directory, defaults to ~/.worklock/logs
	MaxSizeMB  int    // megabytes before rotation (default 10)
	MaxBackups int    // number of backups to keep (default 3)
	MaxAgeDays int    // days to keep (default 7)
	Compress   bool   // gzip rotated files
}

// Setup installs a JSON slog handler writing to a rotating file under the
// configured directory and returns the writer for closing on shutdown.
func Setup(cfg Config) (io.Closer, error) {
	dir := cfg.Dir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(homeDir, ".worklock", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	writer := &lj.Logger{
		Filename:   filepath.Join(dir, "worklock.log"),
		MaxSize:    valOr(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   cfg.Compress,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(writer, nil)))
	return writer, nil
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
