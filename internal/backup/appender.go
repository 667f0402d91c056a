// SPDX-License-Identifier: Apache-2.0

// Package backup appends accepted callback records to a JSON Lines file so a
// plain-text audit trail survives independently of the primary store.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/adiadia/callback-store/internal/domain"
)

type Appender struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewAppender opens the backup file at path for appending, creating the file
// and any parent directories when missing.
func NewAppender(path string, logger *slog.Logger) (*Appender, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return nil, errors.New("backup path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create backup directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open backup file: %w", err)
	}

	logger.Info("backup file ready", "path", path)

	return &Appender{
		path:   path,
		logger: logger,
		file:   file,
	}, nil
}

// Append writes rec as a single JSON line. The record is marshaled outside
// the lock and written with one Write call so concurrent lines never
// interleave.
func (a *Appender) Append(rec domain.CallbackRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode backup record: %w", err)
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return errors.New("backup appender is closed")
	}
	if _, err := a.file.Write(line); err != nil {
		return fmt.Errorf("append backup record: %w", err)
	}

	return nil
}

func (a *Appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	return a.file.Close()
}
