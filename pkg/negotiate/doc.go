// Package negotiate implements proactive content negotiation for net/http
// handler pipelines: it decides per request which media type the server
// should produce by matching the client's Accept header against a
// prioritized list of supported types.
//
// # Middleware
//
// Middleware wraps an http.Handler. Requests whose Accept header intersects
// the supported list reach the wrapped handler with the winning type stored
// on the request context, retrievable with FromContext. Requests that cannot
// be satisfied are answered with an empty 406 Not Acceptable before the
// handler runs. Requests without an Accept header either fall back to the
// first supported type (SupplyDefault) or are rejected the same way.
//
// With AnnotateResponse set, the response Content-Type header is forced to
// the negotiated value, replacing whatever the wrapped handler set.
//
// # Matching
//
// The Matcher interface separates the Accept grammar and ranking rules from
// the pipeline policy above. The default matcher parses with
// github.com/munnerz/goautoneg and ranks clauses by quality weight, then by
// specificity (an exact type beats type/* beats */*), breaking remaining
// ties in favor of earlier entries of the supported list. Matching never
// fails: malformed clauses simply match nothing.
//
// # Concurrency
//
// A middleware instance holds only construction-time configuration and is
// safe for concurrent use. Every per-request value lives on that request's
// context; the incoming request is never mutated.
package negotiate
