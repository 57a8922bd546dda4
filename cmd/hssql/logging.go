package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/devinci-it/hssql/internal/alerr"
)

// parseLogLevel maps a config level name to a slog level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, alerr.New(alerr.ErrConfigInvalid, "unknown log level").
		With("log_level", s).
		WithAllowed([]string{"debug", "info", "warn", "error"})
}

// setupLogging installs a text handler on w as the default slog logger.
func setupLogging(w io.Writer, level string) error {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}
