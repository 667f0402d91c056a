// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

const callbackTokenHeader = "X-Callback-Token"

// TokenAuth enforces the shared callback token for protected routes. Clients
// present it either as a bearer token or in the X-Callback-Token header.
func TokenAuth(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(token) == "" {
				logger.Error("callback token not configured")
				http.Error(w, "callback auth not configured", http.StatusInternalServerError)
				return
			}

			presented, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				presented = r.Header.Get(callbackTokenHeader)
			}
			if presented == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing or invalid callback token", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				logger.Warn("request blocked by callback token middleware",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing or invalid callback token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	schemeToken := strings.SplitN(header, " ", 2)
	if len(schemeToken) != 2 {
		return "", false
	}
	if !strings.EqualFold(schemeToken[0], "Bearer") {
		return "", false
	}
	if schemeToken[1] == "" {
		return "", false
	}
	return schemeToken[1], true
}
