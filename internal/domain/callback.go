// SPDX-License-Identifier: Apache-2.0

package domain

import (
	"encoding/json"
	"time"
)

// CallbackRecord is the persisted form of an accepted scan callback. The id
// is assigned by the record store on insert and is strictly increasing in
// insertion order; received_at is stamped by the ingestion service with the
// server clock, never the client's.
type CallbackRecord struct {
	ID                 int64           `json:"id"`
	CustomerID         string          `json:"customer_id"`
	ScanID             string          `json:"scan_id"`
	Status             string          `json:"status"`
	Payload            json.RawMessage `json:"payload"`
	Metadata           json.RawMessage `json:"metadata"`
	ReceivedAt         time.Time       `json:"received_at"`
	RawClientTimestamp string          `json:"raw_client_timestamp"`
}

// CallbackSubmission is the inbound wire shape of a scan callback. Only
// customerID is required; everything else is stored as received. The client
// timestamp is kept verbatim because client clocks are not trusted for
// ordering.
type CallbackSubmission struct {
	CustomerID string          `json:"customerID"`
	ScanID     string          `json:"scanID"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Metadata   json.RawMessage `json:"metadata"`
	Timestamp  string          `json:"timestamp"`
}
