package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/adiadia/callback-store/internal/domain"
)

// SQLiteCallbackRepository provides the same contract as CallbackRepository
// against an embedded SQLite database. JSON blobs are stored as TEXT.
type SQLiteCallbackRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteCallbackRepository(db *sql.DB, logger *slog.Logger) *SQLiteCallbackRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteCallbackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SQLiteCallbackRepository) Insert(ctx context.Context, rec domain.CallbackRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO callbacks
			(customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.CustomerID,
		rec.ScanID,
		rec.Status,
		string(rec.Payload),
		string(rec.Metadata),
		rec.RawClientTimestamp,
		rec.ReceivedAt.UTC(),
	)
	if err != nil {
		r.logger.Error("insert callback failed",
			"customer_id", rec.CustomerID,
			"error", err,
		)
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Error("read callback insert id failed",
			"customer_id", rec.CustomerID,
			"error", err,
		)
		return 0, err
	}

	return id, nil
}

func (r *SQLiteCallbackRepository) List(ctx context.Context, limit, offset int) ([]domain.CallbackRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at
		FROM callbacks
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`,
		limit,
		offset,
	)
	if err != nil {
		r.logger.Error("list callbacks query failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanCallbackRows(rows, r.logger)
}

func (r *SQLiteCallbackRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.CallbackRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, scan_id, status, payload, metadata, raw_client_timestamp, received_at
		FROM callbacks
		WHERE customer_id=?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
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

	return scanCallbackRows(rows, r.logger)
}

func (r *SQLiteCallbackRepository) Count(ctx context.Context) (int64, error) {
	var total int64

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM callbacks`,
	).Scan(&total)
	if err != nil {
		r.logger.Error("count callbacks failed", "error", err)
		return 0, err
	}

	return total, nil
}

func (r *SQLiteCallbackRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var total int64

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM callbacks WHERE customer_id=?`,
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

func (r *SQLiteCallbackRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM callbacks WHERE id=?`,
		id,
	)
	if err != nil {
		r.logger.Error("delete callback failed", "callback_id", id, "error", err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("read delete result failed", "callback_id", id, "error", err)
		return false, err
	}

	return affected > 0, nil
}

func scanCallbackRows(rows *sql.Rows, logger *slog.Logger) ([]domain.CallbackRecord, error) {
	out := make([]domain.CallbackRecord, 0, 8)
	for rows.Next() {
		var (
			rec      domain.CallbackRecord
			payload  string
			metadata string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.CustomerID,
			&rec.ScanID,
			&rec.Status,
			&payload,
			&metadata,
			&rec.RawClientTimestamp,
			&rec.ReceivedAt,
		); err != nil {
			logger.Error("scan callback row failed", "error", err)
			return nil, err
		}
		rec.Payload = json.RawMessage(payload)
		rec.Metadata = json.RawMessage(metadata)
		rec.ReceivedAt = rec.ReceivedAt.UTC()
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error("callback rows iteration failed", "error", err)
		return nil, err
	}

	return out, nil
}
