// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adiadia/callback-store/internal/backup"
	"github.com/adiadia/callback-store/internal/domain"
	"github.com/adiadia/callback-store/internal/persistence/sqlite"
	"github.com/adiadia/callback-store/internal/repository"
)

func countBackupLines(t *testing.T, path string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup file: %v", err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}

func TestIngestAndQueryFlow(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, err := sqlite.Open(ctx, filepath.Join(dir, "callbacks.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer db.Close()

	backupPath := filepath.Join(dir, "backup.jsonl")
	appender, err := backup.NewAppender(backupPath, discardLogger())
	if err != nil {
		t.Fatalf("new appender: %v", err)
	}
	defer appender.Close()

	store := repository.NewSQLiteCallbackRepository(db, discardLogger())
	ingest := NewIngestService(store, appender, discardLogger())
	query := NewQueryService(store, discardLogger())

	submissions := []domain.CallbackSubmission{
		{CustomerID: "CUST_1", ScanID: "S1", Status: "completed", Data: json.RawMessage(`{"hr": 75}`)},
		{CustomerID: "CUST_2", ScanID: "S2", Status: "failed"},
		{CustomerID: "CUST_1", ScanID: "S3", Status: "queued"},
	}
	for i, sub := range submissions {
		rec, err := ingest.Accept(ctx, sub)
		if err != nil {
			t.Fatalf("accept submission %d: %v", i, err)
		}
		if rec.ID != int64(i+1) {
			t.Fatalf("expected id %d got %d", i+1, rec.ID)
		}
	}

	// rejected submissions must leave both stores untouched
	if _, err := ingest.Accept(ctx, domain.CallbackSubmission{}); !errors.Is(err, domain.ErrMissingCustomerID) {
		t.Fatalf("expected ErrMissingCustomerID got %v", err)
	}

	all, err := query.ListAll(ctx, domain.Page{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 3 || len(all.Results) != 3 {
		t.Fatalf("expected 3 stored callbacks, got %+v", all)
	}
	if all.Results[0].ID != 3 || all.Results[1].ID != 2 || all.Results[2].ID != 1 {
		t.Fatalf("expected newest-first ids [3 2 1], got %+v", all.Results)
	}

	byCustomer, err := query.ListByCustomer(ctx, "CUST_1", domain.Page{})
	if err != nil {
		t.Fatalf("list by customer: %v", err)
	}
	if byCustomer.Total != 2 || len(byCustomer.Results) != 2 {
		t.Fatalf("expected 2 callbacks for CUST_1, got %+v", byCustomer)
	}
	if byCustomer.Results[0].ID != 3 || byCustomer.Results[1].ID != 1 {
		t.Fatalf("expected CUST_1 ids [3 1], got %+v", byCustomer.Results)
	}
	if !bytes.Equal(byCustomer.Results[1].Payload, []byte(`{"hr": 75}`)) {
		t.Fatalf("expected stored payload to round-trip, got %s", byCustomer.Results[1].Payload)
	}

	if got := countBackupLines(t, backupPath); got != 3 {
		t.Fatalf("expected 3 backup lines got %d", got)
	}

	if err := query.Delete(ctx, 2); err != nil {
		t.Fatalf("delete callback 2: %v", err)
	}
	if err := query.Delete(ctx, 2); !errors.Is(err, domain.ErrCallbackNotFound) {
		t.Fatalf("expected ErrCallbackNotFound on repeat delete, got %v", err)
	}

	all, err = query.ListAll(ctx, domain.Page{})
	if err != nil {
		t.Fatalf("list all after delete: %v", err)
	}
	if all.Total != 2 || len(all.Results) != 2 {
		t.Fatalf("expected 2 callbacks after delete, got %+v", all)
	}

	// deletes never touch the backup trail
	if got := countBackupLines(t, backupPath); got != 3 {
		t.Fatalf("expected backup to keep 3 lines got %d", got)
	}
}
