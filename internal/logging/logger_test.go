// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "unknown", want: slog.LevelInfo},
	}

	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q): expected %v got %v", tc.in, tc.want, got)
		}
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "")
	if logger := NewLogger("dev"); logger == nil {
		t.Fatal("expected dev logger")
	}
	if logger := NewLogger("prod"); logger == nil {
		t.Fatal("expected prod logger")
	}
}

func TestNewLoggerTeesToLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "service.log")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", logPath)

	logger := NewLogger("prod")
	logger.Info("log file tee probe")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "log file tee probe") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
}

func TestNewLoggerSurvivesUnwritableLogFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "missing", "nested", "service.log"))

	if logger := NewLogger("prod"); logger == nil {
		t.Fatal("expected logger despite unwritable log file")
	}
}
