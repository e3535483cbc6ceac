// Package logging sets up the process's structured logger, matching the
// convention used across this module's sibling CLI tools: a slog text
// handler on stderr whose level defaults to Info, raised to Debug by -v or
// by the LOG_LEVEL environment variable.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Configure installs the default slog logger. verbose forces debug level;
// otherwise LOG_LEVEL (debug/info/warn/error, case-insensitive) is
// consulted, defaulting to info.
func Configure(verbose bool) {
	level := levelFromEnv()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
