package negotiate

import "strings"

// MediaType is a negotiated media type in type/subtype form, for example
// "application/json". The middleware copies one of the configured supported
// types verbatim; comparison against Accept clauses is case-insensitive.
type MediaType string

// String returns the type/subtype value.
func (m MediaType) String() string { return string(m) }

// splitMediaType splits a type/subtype value into its case-folded parts.
// Values that are not a two-part media type report ok == false.
func splitMediaType(v string) (typ, sub string, ok bool) {
	before, after, found := strings.Cut(v, "/")
	if !found {
		return "", "", false
	}
	typ = strings.ToLower(strings.TrimSpace(before))
	sub = strings.ToLower(strings.TrimSpace(after))
	if typ == "" || sub == "" {
		return "", "", false
	}
	return typ, sub, true
}
