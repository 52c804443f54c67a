package negotiate

import (
	"strings"

	"github.com/munnerz/goautoneg"
)

// Matcher ranks the media range clauses of an Accept header against an
// ordered list of supported media types and picks the best supported type.
//
// Implementations must be deterministic for a fixed (header, supported)
// pair and must treat unparseable input as matching nothing rather than
// returning an error.
type Matcher interface {
	// Match returns the best supported media type for the given Accept
	// header value, or false when no clause covers any supported type.
	Match(header string, supported []string) (MediaType, bool)
}

// MatcherFunc adapts an ordinary function to the Matcher interface.
type MatcherFunc func(header string, supported []string) (MediaType, bool)

// Match calls f(header, supported).
func (f MatcherFunc) Match(header string, supported []string) (MediaType, bool) {
	return f(header, supported)
}

// DefaultMatcher returns the matcher used when Config.Matcher is nil.
func DefaultMatcher() Matcher {
	return qualityMatcher{}
}

// qualityMatcher selects by the proactive negotiation rules of RFC 9110
// section 12.5.1: clauses are ranked by quality weight, then by specificity
// (an exact type/subtype beats type/*, which beats */*), and remaining ties
// between supported types resolve to the earlier list entry. goautoneg
// supplies the Accept grammar; the selection policy over the parsed clauses
// lives here.
type qualityMatcher struct{}

func (qualityMatcher) Match(header string, supported []string) (MediaType, bool) {
	clauses := goautoneg.ParseAccept(header)

	best := -1
	var bestQ float64
	var bestSpec int

	for i, offer := range supported {
		q, spec, ok := bestClause(clauses, offer)
		if !ok {
			continue
		}
		if best < 0 || q > bestQ || (q == bestQ && spec > bestSpec) {
			best, bestQ, bestSpec = i, q, spec
		}
	}
	if best < 0 {
		return "", false
	}
	return MediaType(supported[best]), true
}

// bestClause finds the highest ranked clause covering the offered type.
// Clauses with a quality weight of zero or below never cover anything, so a
// client can rule out a type with q=0. Offers that are not a type/subtype
// pair are skipped.
func bestClause(clauses []goautoneg.Accept, offer string) (q float64, spec int, ok bool) {
	typ, sub, valid := splitMediaType(offer)
	if !valid {
		return 0, 0, false
	}
	for _, c := range clauses {
		if c.Q <= 0 {
			continue
		}
		cs, covers := clauseSpecificity(c, typ, sub)
		if !covers {
			continue
		}
		if !ok || c.Q > q || (c.Q == q && cs > spec) {
			q, spec, ok = c.Q, cs, true
		}
	}
	return q, spec, ok
}

// clauseSpecificity reports whether the clause covers the offered type and
// how specific the coverage is: 2 for an exact match, 1 for a subtype
// wildcard, 0 for the full wildcard.
func clauseSpecificity(c goautoneg.Accept, typ, sub string) (int, bool) {
	ct := strings.ToLower(c.Type)
	cs := strings.ToLower(c.SubType)
	switch {
	case ct == typ && cs == sub:
		return 2, true
	case ct == typ && cs == "*":
		return 1, true
	case ct == "*" && cs == "*":
		return 0, true
	default:
		return 0, false
	}
}
