package negotiate

import (
	"net/http"

	"github.com/vfaronov/httpheader"
)

// Trace describes how one Accept header value was interpreted against a
// supported media type list. It is a diagnostic view: Clauses reports the
// full parse, including parameters and extensions the matcher itself
// ignores, while Result and Matched carry the matcher's verdict for the
// same input.
type Trace struct {
	Header    string        `json:"header"`
	Clauses   []TraceClause `json:"clauses,omitempty"`
	Supported []string      `json:"supported"`
	Result    string        `json:"result,omitempty"`
	Matched   bool          `json:"matched"`
}

// TraceClause is one parsed Accept clause. Type is the full media range,
// wildcards included. Ext holds extension parameters placed after the
// quality weight.
type TraceClause struct {
	Type   string            `json:"type"`
	Q      float64           `json:"q"`
	Params map[string]string `json:"params,omitempty"`
	Ext    map[string]string `json:"ext,omitempty"`
}

// Explain parses the header with the github.com/vfaronov/httpheader grammar
// and reports the matcher's decision next to the parse. A nil matcher
// explains DefaultMatcher. Explain is pure computation with no side
// effects, intended for debug endpoints and tests.
func Explain(m Matcher, header string, supported []string) Trace {
	if m == nil {
		m = DefaultMatcher()
	}

	tr := Trace{Header: header, Supported: supported}

	h := http.Header{}
	if header != "" {
		h.Set("Accept", header)
	}
	for _, elem := range httpheader.Accept(h) {
		tr.Clauses = append(tr.Clauses, TraceClause{
			Type:   elem.Type,
			Q:      float64(elem.Q),
			Params: elem.Params,
			Ext:    elem.Ext,
		})
	}

	if mt, ok := m.Match(header, supported); ok {
		tr.Result = mt.String()
		tr.Matched = true
	}
	return tr
}
