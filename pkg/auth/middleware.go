package auth

import (
	"log/slog"
	"net/http"

	"github.com/rhuss/akzept/pkg/observability"
)

// DefaultBypass lists paths that skip authentication.
var DefaultBypass = []string{"/healthz", "/readyz", "/metrics"}

// Middleware wraps a handler with request authentication.
//
// Requests whose path is on the bypass list pass through untouched.
// Every other request must authenticate; failures are rejected with
// 401 and never reach the handler. On success the identity is stored
// in the request context.
func Middleware(authn Authenticator, bypassPaths []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassPaths))
	for _, p := range bypassPaths {
		bypass[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			id, err := authn.Authenticate(r.Context(), r)
			if err != nil {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				observability.AuthFailuresTotal.Inc()
				http.Error(w, `{"error":{"type":"invalid_request","message":"authentication required"}}`, http.StatusUnauthorized)
				return
			}

			// Validate identity.
			if id == nil || id.Subject == "" {
				slog.Error("authenticator returned identity with empty subject")
				http.Error(w, `{"error":{"type":"server_error","message":"internal authentication error"}}`, http.StatusInternalServerError)
				return
			}

			slog.Debug("authentication succeeded",
				"subject", id.Subject,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), id)))
		})
	}
}
