// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adiadia/callback-store/internal/domain"
	"github.com/adiadia/callback-store/internal/metrics"
)

// IngestService validates incoming submissions, persists them and mirrors
// accepted records to the backup appender.
type IngestService struct {
	store  CallbackStore
	backup BackupAppender
	logger *slog.Logger
}

func NewIngestService(store CallbackStore, backup BackupAppender, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}

	return &IngestService{
		store:  store,
		backup: backup,
		logger: logger,
	}
}

// Accept runs the full ingestion flow for one submission. The returned record
// carries the assigned id and the server-side receipt time.
func (s *IngestService) Accept(ctx context.Context, sub domain.CallbackSubmission) (domain.CallbackRecord, error) {
	start := time.Now()

	customerID := strings.TrimSpace(sub.CustomerID)
	if customerID == "" {
		metrics.IncCallbackReceived("rejected")
		return domain.CallbackRecord{}, domain.ErrMissingCustomerID
	}

	rec := domain.CallbackRecord{
		CustomerID:         customerID,
		ScanID:             sub.ScanID,
		Status:             sub.Status,
		Payload:            normalizeBlob(sub.Data),
		Metadata:           normalizeBlob(sub.Metadata),
		RawClientTimestamp: sub.Timestamp,
		ReceivedAt:         time.Now().UTC(),
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		metrics.IncCallbackReceived("storage_error")
		return domain.CallbackRecord{}, fmt.Errorf("insert callback: %w", err)
	}
	rec.ID = id

	// backup failures must not fail the request
	if err := s.backup.Append(rec); err != nil {
		metrics.IncBackupWrite("error")
		s.logger.Error("backup append failed", "callback_id", id, "error", err)
	} else {
		metrics.IncBackupWrite("ok")
	}

	metrics.IncCallbackReceived("accepted")
	metrics.ObserveIngestDuration(time.Since(start))
	metrics.ObservePayloadBytes(len(rec.Payload))

	s.logger.Info("callback accepted",
		"callback_id", id,
		"customer_id", customerID,
		"scan_id", rec.ScanID,
	)

	return rec, nil
}

// normalizeBlob maps absent JSON blobs to an explicit null so records always
// carry valid JSON.
func normalizeBlob(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
