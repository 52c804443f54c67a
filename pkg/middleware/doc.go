// Package middleware provides the HTTP middleware chain for akzept servers.
//
// All middleware share the Middleware function type and compose with Chain.
// Built-in middleware covers panic recovery, request ID assignment and
// propagation (X-Request-ID), structured access logging via log/slog, and
// Vary response headers for negotiated resources.
//
// The content negotiation middleware itself lives in pkg/negotiate; it
// returns a plain func(http.Handler) http.Handler and slots into a Chain
// like any middleware from this package.
package middleware
