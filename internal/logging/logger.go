// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a project-standard slog logger.
// - env=dev: text handler with source locations
// - env=prod: JSON handler without source locations
// LOG_LEVEL controls the level (debug/info/warn/error), default info.
// LOG_FILE, when set, tees output to that file in append mode so a local
// log copy survives alongside the console stream.
func NewLogger(env string) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	out, fileErr := logOutput(os.Getenv("LOG_FILE"))

	var logger *slog.Logger
	if strings.EqualFold(strings.TrimSpace(env), "prod") {
		logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:     level,
			AddSource: false,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}

	if fileErr != nil {
		logger.Warn("log file unavailable, logging to stdout only", "error", fileErr)
	}

	return logger
}

func logOutput(path string) (io.Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return os.Stdout, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stdout, err
	}

	return io.MultiWriter(os.Stdout, file), nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
