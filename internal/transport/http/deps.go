// SPDX-License-Identifier: Apache-2.0

package httptransport

import (
	"context"

	"github.com/adiadia/callback-store/internal/domain"
)

type CallbackIngestor interface {
	Accept(ctx context.Context, sub domain.CallbackSubmission) (domain.CallbackRecord, error)
}

type CallbackQuerier interface {
	ListAll(ctx context.Context, page domain.Page) (domain.CallbackPage, error)
	ListByCustomer(ctx context.Context, customerID string, page domain.Page) (domain.CallbackPage, error)
	Delete(ctx context.Context, id int64) error
}

type HealthChecker interface {
	Check(ctx context.Context) error
}
