package server

import (
	"encoding/json"
	"fmt"
	"html"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rhuss/akzept/pkg/negotiate"
)

const serviceVersion = "0.3.0"

// Info describes the running service. It is the payload of /v1/info,
// rendered in whichever representation the negotiation settled on.
type Info struct {
	Service        string   `json:"service" yaml:"service"`
	Version        string   `json:"version" yaml:"version"`
	SupportedTypes []string `json:"supported_types" yaml:"supported_types"`
}

// handleInfo serves GET /v1/info. The route is mounted behind the
// negotiation middleware, so the media type to render is read from the
// request context.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	mt, ok := negotiate.FromContext(r.Context())
	if !ok {
		s.logger.Error("info handler reached without a negotiated media type")
		http.Error(w, "media type not negotiated", http.StatusInternalServerError)
		return
	}

	info := Info{
		Service:        serviceName,
		Version:        serviceVersion,
		SupportedTypes: s.cfg.Negotiation.SupportedTypes,
	}

	base, _, err := mime.ParseMediaType(mt.String())
	if err != nil {
		http.Error(w, fmt.Sprintf("no renderer for %s", mt), http.StatusNotImplemented)
		return
	}

	switch base {
	case "application/json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)

	case "application/yaml":
		w.Header().Set("Content-Type", "application/yaml")
		enc := yaml.NewEncoder(w)
		enc.Encode(info)
		enc.Close()

	case "text/plain":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "service: %s\nversion: %s\nsupported_types: %s\n",
			info.Service, info.Version, strings.Join(info.SupportedTypes, ", "))

	case "text/html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body>\n", info.Service)
		fmt.Fprintf(w, "<h1>%s %s</h1>\n<ul>\n", info.Service, info.Version)
		for _, t := range info.SupportedTypes {
			fmt.Fprintf(w, "<li>%s</li>\n", html.EscapeString(t))
		}
		fmt.Fprint(w, "</ul>\n</body></html>\n")

	default:
		http.Error(w, fmt.Sprintf("no renderer for %s", mt), http.StatusNotImplemented)
	}
}
