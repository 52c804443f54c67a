package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/akzept/pkg/auth"
	"github.com/rhuss/akzept/pkg/middleware"
	"github.com/rhuss/akzept/pkg/negotiate"
	"github.com/rhuss/akzept/pkg/observability"
)

// buildHandler wires the route table and middleware stacks.
//
// Ordering matters: metrics sit outermost so rejected negotiations and
// authentication failures are counted, recovery sits innermost so the
// access log records the 500 it writes, and authentication wraps the
// mux so bypass paths are matched against the raw request path.
func (s *Server) buildHandler(authn auth.Authenticator) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)

	if s.cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	negotiated := middleware.Chain(
		middleware.Vary(),
		negotiate.Middleware(negotiate.Config{
			SupportedTypes:   s.cfg.Negotiation.SupportedTypes,
			SupplyDefault:    s.cfg.Negotiation.SupplyDefault,
			AnnotateResponse: s.cfg.Negotiation.AnnotateResponse,
		}),
		observability.NegotiatedTypes,
	)
	mux.Handle("GET /v1/info", negotiated(http.HandlerFunc(s.handleInfo)))

	if s.cfg.Server.Debug {
		mux.HandleFunc("GET /debug/negotiate", s.handleDebugNegotiate)
	}

	var handler http.Handler = mux
	if authn != nil {
		handler = auth.Middleware(authn, auth.DefaultBypass)(handler)
	}

	return middleware.Chain(
		observability.Metrics,
		middleware.RequestID(),
		middleware.AccessLog(s.logger),
		middleware.Recovery(s.logger),
	)(handler)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
