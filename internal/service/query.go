// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adiadia/callback-store/internal/domain"
	"github.com/adiadia/callback-store/internal/metrics"
)

// QueryService serves paginated reads and deletes against the record store.
type QueryService struct {
	store  CallbackStore
	logger *slog.Logger
}

func NewQueryService(store CallbackStore, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &QueryService{
		store:  store,
		logger: logger,
	}
}

func (s *QueryService) ListAll(ctx context.Context, page domain.Page) (domain.CallbackPage, error) {
	page = page.Clamp()

	total, err := s.store.Count(ctx)
	if err != nil {
		return domain.CallbackPage{}, fmt.Errorf("count callbacks: %w", err)
	}

	records, err := s.store.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return domain.CallbackPage{}, fmt.Errorf("list callbacks: %w", err)
	}

	return domain.CallbackPage{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Results: records,
	}, nil
}

func (s *QueryService) ListByCustomer(ctx context.Context, customerID string, page domain.Page) (domain.CallbackPage, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return domain.CallbackPage{}, domain.ErrMissingCustomerID
	}
	page = page.Clamp()

	total, err := s.store.CountByCustomer(ctx, customerID)
	if err != nil {
		return domain.CallbackPage{}, fmt.Errorf("count customer callbacks: %w", err)
	}

	records, err := s.store.ListByCustomer(ctx, customerID, page.Limit, page.Offset)
	if err != nil {
		return domain.CallbackPage{}, fmt.Errorf("list customer callbacks: %w", err)
	}

	return domain.CallbackPage{
		CustomerID: customerID,
		Total:      total,
		Limit:      page.Limit,
		Offset:     page.Offset,
		Results:    records,
	}, nil
}

func (s *QueryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete callback: %w", err)
	}
	if !deleted {
		metrics.IncCallbackDeleted("not_found")
		return domain.ErrCallbackNotFound
	}

	metrics.IncCallbackDeleted("deleted")
	s.logger.Info("callback deleted", "callback_id", id)

	return nil
}
