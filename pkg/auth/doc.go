// Package auth guards the HTTP surface with request authentication.
//
// # Schemes
//
// Two schemes are provided. APIKeys compares bearer tokens against a
// static set of SHA-256 hashed keys in constant time. JWT validates
// HS256-signed tokens against a shared secret, optionally pinning
// issuer and audience.
//
// Both implement Authenticator. The server picks one at startup based
// on configuration; Middleware wraps the router with it and rejects
// unauthenticated requests with 401 before they reach a handler.
//
// # Identity
//
// A successful authentication yields an Identity that Middleware
// stores on the request context. Handlers retrieve it with
// IdentityFromContext.
package auth
