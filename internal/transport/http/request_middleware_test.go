// SPDX-License-Identifier: Apache-2.0

package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRequestIDMiddlewareGeneratesAndPropagatesRequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var gotRequestID string
	h := requestIDMiddleware()(requestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := requestIDFromContext(r.Context())
		if !ok {
			t.Fatal("expected request_id in context")
		}
		gotRequestID = requestID
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	respRequestID := rec.Header().Get(headerRequestID)
	if respRequestID == "" {
		t.Fatal("expected X-Request-Id response header")
	}
	if gotRequestID != respRequestID {
		t.Fatalf("expected context request_id %q got %q", respRequestID, gotRequestID)
	}
}

func TestRequestIDMiddlewarePreservesIncomingRequestID(t *testing.T) {
	h := requestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := requestIDFromContext(r.Context())
		if !ok {
			t.Fatal("expected request_id in context")
		}
		if requestID != "req-fixed-id" {
			t.Fatalf("expected request_id req-fixed-id got %q", requestID)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "req-fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	if got := rec.Header().Get(headerRequestID); got != "req-fixed-id" {
		t.Fatalf("expected X-Request-Id req-fixed-id got %q", got)
	}
}

func TestStatusRecorderDefaultsToOKOnWrite(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := requestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected implicit status 200 got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("expected body ok got %q", rec.Body.String())
	}
}

func TestStatusRecorderCountsBytes(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	if _, err := rec.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := rec.Write([]byte(" world")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rec.bytes != 11 {
		t.Fatalf("expected 11 bytes recorded got %d", rec.bytes)
	}
	if rec.status != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.status)
	}
}

func TestRoutePattern(t *testing.T) {
	if got := routePattern(httptest.NewRequest(http.MethodGet, "/nope", nil)); got != "unrouted" {
		t.Fatalf("expected unrouted fallback got %q", got)
	}

	var got string
	r := chi.NewRouter()
	r.Get("/customers/{customerID}/callbacks", func(w http.ResponseWriter, r *http.Request) {
		got = routePattern(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/customers/CUST_1/callbacks", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got != "/customers/{customerID}/callbacks" {
		t.Fatalf("expected route template got %q", got)
	}
}
