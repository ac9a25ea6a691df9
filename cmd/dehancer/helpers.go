package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// logsFlag registers the --logs flag every command carries.
func logsFlag(fs *flag.FlagSet) *int {
	return fs.Int("logs", 0, "enable debug logs (1 for enabled, 0 for disabled)")
}

// setupLogging routes slog to stderr at the requested level. Debug output is
// opt-in; the default level keeps command output clean.
func setupLogging(logs int) {
	level := slog.LevelWarn
	if logs == 1 {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
