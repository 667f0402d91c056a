// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects when token is not configured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/callbacks", nil)
		rec := httptest.NewRecorder()

		TokenAuth("", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
		}
	})

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/callbacks", nil)
		rec := httptest.NewRecorder()

		TokenAuth("callback-secret", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Fatalf("expected WWW-Authenticate header %q got %q", "Bearer", got)
		}
	})

	t.Run("rejects wrong bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/callbacks", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()

		TokenAuth("callback-secret", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
		}
	})

	t.Run("rejects wrong header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/callbacks", nil)
		req.Header.Set("X-Callback-Token", "nope")
		rec := httptest.NewRecorder()

		TokenAuth("callback-secret", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
		}
	})

	t.Run("accepts valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/callbacks", nil)
		req.Header.Set("Authorization", "Bearer callback-secret")
		rec := httptest.NewRecorder()

		TokenAuth("callback-secret", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("accepts valid header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/callbacks", nil)
		req.Header.Set("X-Callback-Token", "callback-secret")
		rec := httptest.NewRecorder()

		TokenAuth("callback-secret", logger)(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "", want: "", ok: false},
		{header: "Bearer", want: "", ok: false},
		{header: "Bearer ", want: "", ok: false},
		{header: "Basic c2VjcmV0", want: "", ok: false},
		{header: "Bearer secret", want: "secret", ok: true},
		{header: "bearer secret", want: "secret", ok: true},
	}

	for _, tc := range cases {
		got, ok := bearerToken(tc.header)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("bearerToken(%q) = %q, %v; want %q, %v", tc.header, got, ok, tc.want, tc.ok)
		}
	}
}
