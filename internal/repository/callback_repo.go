// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adiadia/callback-store/internal/domain"
)

type CallbackRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCallbackRepository(pool *pgxpool.Pool, logger *slog.Logger) *CallbackRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &CallbackRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *CallbackRepository) Insert(ctx context.Context, rec domain.CallbackRecord) (int64, error) {
	var id int64

	err := r.pool.QueryRow(ctx, `
		INSERT INTO callbacks
			(customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		rec.CustomerID,
		rec.ScanID,
		rec.Status,
		rec.Payload,
		rec.Metadata,
		rec.RawClientTimestamp,
		rec.ReceivedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("insert callback failed",
			"customer_id", rec.CustomerID,
			"error", err,
		)
		return 0, err
	}

	return id, nil
}

func (r *CallbackRepository) List(ctx context.Context, limit, offset int) ([]domain.CallbackRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at
		FROM callbacks
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`,
		limit,
		offset,
	)
	if err != nil {
		r.logger.Error("list callbacks query failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectCallbackRows(rows, r.logger)
}

func (r *CallbackRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.CallbackRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at
		FROM callbacks
		WHERE customer_id=$1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`,
		customerID,
		limit,
		offset,
	)
	if err != nil {
		r.logger.Error("list customer callbacks query failed",
			"customer_id", customerID,
			"error", err,
		)
		return nil, err
	}
	defer rows.Close()

	return collectCallbackRows(rows, r.logger)
}

func (r *CallbackRepository) Count(ctx context.Context) (int64, error) {
	var total int64

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM callbacks`,
	).Scan(&total)
	if err != nil {
		r.logger.Error("count callbacks failed", "error", err)
		return 0, err
	}

	return total, nil
}

func (r *CallbackRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var total int64

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM callbacks WHERE customer_id=$1`,
		customerID,
	).Scan(&total)
	if err != nil {
		r.logger.Error("count customer callbacks failed",
			"customer_id", customerID,
			"error", err,
		)
		return 0, err
	}

	return total, nil
}

func (r *CallbackRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM callbacks WHERE id=$1`,
		id,
	)
	if err != nil {
		r.logger.Error("delete callback failed", "callback_id", id, "error", err)
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func collectCallbackRows(rows pgx.Rows, logger *slog.Logger) ([]domain.CallbackRecord, error) {
	out := make([]domain.CallbackRecord, 0, 8)
	for rows.Next() {
		var rec domain.CallbackRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.CustomerID,
			&rec.ScanID,
			&rec.Status,
			&rec.Payload,
			&rec.Metadata,
			&rec.RawClientTimestamp,
			&rec.ReceivedAt,
		); err != nil {
			logger.Error("scan callback row failed", "error", err)
			return nil, err
		}
		rec.ReceivedAt = rec.ReceivedAt.UTC()
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error("callback rows iteration failed", "error", err)
		return nil, err
	}

	return out, nil
}
