// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestNewCallbackRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var pool *pgxpool.Pool

	repo := NewCallbackRepository(pool, logger)
	if repo == nil {
		t.Fatal("expected callback repository instance")
	}
	if repo.pool != pool {
		t.Fatal("expected pool reference to be preserved")
	}
	if repo.logger != logger {
		t.Fatal("expected logger reference to be preserved")
	}
}

func TestNewCallbackRepositoryDefaultsLogger(t *testing.T) {
	repo := NewCallbackRepository(nil, nil)
	if repo.logger == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestNewSQLiteCallbackRepository(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := NewSQLiteCallbackRepository(nil, logger)
	if repo == nil {
		t.Fatal("expected sqlite callback repository instance")
	}
	if repo.db != nil {
		t.Fatal("expected db reference to be preserved")
	}
	if repo.logger != logger {
		t.Fatal("expected logger reference to be preserved")
	}
}

func TestNewSQLiteCallbackRepositoryDefaultsLogger(t *testing.T) {
	repo := NewSQLiteCallbackRepository(nil, nil)
	if repo.logger == nil {
		t.Fatal("expected fallback logger")
	}
}
