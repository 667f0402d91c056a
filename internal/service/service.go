// SPDX-License-Identifier: Apache-2.0

// Package service orchestrates callback ingestion and retrieval on top of a
// record store and the backup appender.
package service

import (
	"context"

	"github.com/adiadia/callback-store/internal/domain"
)

// CallbackStore is the persistence contract the services depend on. Both the
// Postgres and the SQLite repositories satisfy it.
type CallbackStore interface {
	Insert(ctx context.Context, rec domain.CallbackRecord) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.CallbackRecord, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.CallbackRecord, error)
	Count(ctx context.Context) (int64, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// BackupAppender receives a copy of every accepted callback record.
type BackupAppender interface {
	Append(rec domain.CallbackRecord) error
}
