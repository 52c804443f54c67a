package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is the header used to propagate request IDs between
// clients, the server, and upstream proxies.
const HeaderRequestID = "X-Request-ID"

// RequestID returns middleware that assigns a unique request ID to each
// request. If the client sent an X-Request-ID header, that value is reused;
// otherwise a new UUID is generated. The ID is stored in the request
// context (RequestIDFromContext) and echoed on the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
		})
	}
}
