package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rhuss/akzept/pkg/negotiate"
)

// handleDebugNegotiate serves GET /debug/negotiate, only mounted when
// debug mode is on. It explains how an Accept header would be matched
// against the configured supported types. The header under test comes
// from the accept query parameter, falling back to the request's own
// Accept header; the supported set can be overridden with a
// comma-separated supported parameter.
func (s *Server) handleDebugNegotiate(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Accept")
	if v := r.URL.Query().Get("accept"); v != "" {
		header = v
	}

	supported := s.cfg.Negotiation.SupportedTypes
	if v := r.URL.Query().Get("supported"); v != "" {
		supported = nil
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				supported = append(supported, t)
			}
		}
	}

	trace := negotiate.Explain(nil, header, supported)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trace)
}
