// SPDX-License-Identifier: Apache-2.0

package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adiadia/callback-store/internal/domain"
	"github.com/adiadia/callback-store/internal/metrics"
	"github.com/adiadia/callback-store/internal/transport/middleware"
)

type Deps struct {
	Ingestor      CallbackIngestor
	Querier       CallbackQuerier
	Health        HealthChecker
	Logger        *slog.Logger
	CallbackToken string
	Version       string
	Commit        string
	BuildDate     string
}

func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Init()
	version := valueOrDefault(deps.Version, "dev")
	commit := valueOrDefault(deps.Commit, "none")
	buildDate := valueOrDefault(deps.BuildDate, "unknown")

	r := chi.NewRouter()
	r.Use(requestIDMiddleware())
	r.Use(requestLoggingMiddleware(logger))

	// ---------------- SERVICE INFO ----------------

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "callback-store",
			"status":  "running",
			"endpoints": map[string]string{
				"ingest":           "POST /callbacks",
				"list":             "GET /callbacks",
				"list_by_customer": "GET /customers/{customerID}/callbacks",
				"delete":           "DELETE /callbacks/{id}",
				"health":           "GET /healthz",
				"metrics":          "GET /metrics",
				"version":          "GET /version",
			},
		})
	})

	// ---------------- HEALTH ----------------

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("health check hit")
		if deps.Health != nil {
			if err := deps.Health.Check(r.Context()); err != nil {
				logger.Warn("health check failed", "error", err)
				http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ---------------- METRICS ----------------

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// ---------------- VERSION ----------------

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version":    version,
			"commit":     commit,
			"build_date": buildDate,
		})
	})

	// ---------------- CALLBACKS (OPTIONAL TOKEN AUTH) ----------------

	r.Group(func(r chi.Router) {
		if deps.CallbackToken != "" {
			r.Use(middleware.TokenAuth(deps.CallbackToken, logger))
		}

		// ---------------- INGEST CALLBACK ----------------

		r.Post("/callbacks", func(w http.ResponseWriter, r *http.Request) {
			sub, err := decodeCallbackSubmission(r)
			if err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}

			rec, err := deps.Ingestor.Accept(r.Context(), sub)
			if err != nil {
				if errors.Is(err, domain.ErrMissingCustomerID) {
					http.Error(w, "customer id is required", http.StatusBadRequest)
					return
				}

				logger.Error("ingest callback failed", "error", err)
				http.Error(w, "failed to store callback", http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusOK, rec)
		})

		// ---------------- LIST CALLBACKS ----------------

		r.Get("/callbacks", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			page, err := domain.ParsePage(q.Get("limit"), q.Get("offset"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			listing, err := deps.Querier.ListAll(r.Context(), page)
			if err != nil {
				logger.Error("list callbacks failed", "error", err)
				http.Error(w, "failed to list callbacks", http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusOK, listing)
		})

		// ---------------- LIST CUSTOMER CALLBACKS ----------------

		r.Get("/customers/{customerID}/callbacks", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			page, err := domain.ParsePage(q.Get("limit"), q.Get("offset"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			customerID := chi.URLParam(r, "customerID")
			listing, err := deps.Querier.ListByCustomer(r.Context(), customerID, page)
			if err != nil {
				if errors.Is(err, domain.ErrMissingCustomerID) {
					http.Error(w, "customer id is required", http.StatusBadRequest)
					return
				}

				logger.Error("list customer callbacks failed", "customer_id", customerID, "error", err)
				http.Error(w, "failed to list callbacks", http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusOK, listing)
		})

		// ---------------- DELETE CALLBACK ----------------

		r.Delete("/callbacks/{id}", func(w http.ResponseWriter, r *http.Request) {
			idStr := chi.URLParam(r, "id")

			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil || id <= 0 {
				http.Error(w, "invalid callback ID", http.StatusBadRequest)
				return
			}

			if err := deps.Querier.Delete(r.Context(), id); err != nil {
				if errors.Is(err, domain.ErrCallbackNotFound) {
					logger.Warn("callback not found", "callback_id", id)
					http.Error(w, "callback not found", http.StatusNotFound)
					return
				}

				logger.Error("delete callback failed", "callback_id", id, "error", err)
				http.Error(w, "failed to delete callback", http.StatusInternalServerError)
				return
			}

			logger.Info("callback deleted via API", "callback_id", id)

			writeJSON(w, http.StatusOK, map[string]any{
				"id":      id,
				"deleted": true,
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeCallbackSubmission decodes leniently: callbacks arrive from third-party
// systems, so unknown fields pass through and an empty body maps to an empty
// submission that fails customer validation downstream.
func decodeCallbackSubmission(r *http.Request) (domain.CallbackSubmission, error) {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return domain.CallbackSubmission{}, nil
	}

	var sub domain.CallbackSubmission
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&sub); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.CallbackSubmission{}, nil
		}
		return domain.CallbackSubmission{}, err
	}

	// Ensure there is only one JSON document.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.CallbackSubmission{}, errors.New("request body must contain exactly one JSON document")
	}

	return sub, nil
}

func valueOrDefault(value, defaultValue string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	return trimmed
}
