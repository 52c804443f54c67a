// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring akzept servers.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akzept_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "akzept_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// InFlightRequests tracks the number of requests currently being served.
	InFlightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "akzept_requests_in_flight",
			Help: "Requests currently in flight",
		},
	)

	// NegotiationsTotal counts content negotiation outcomes. A request that
	// passes the negotiation middleware counts as "negotiated"; a 406
	// observed at the outer metrics layer counts as "rejected".
	NegotiationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akzept_negotiations_total",
			Help: "Negotiation outcomes",
		},
		[]string{"outcome"},
	)

	// NegotiatedTypeTotal counts successful negotiations by media type.
	NegotiatedTypeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akzept_negotiated_type_total",
			Help: "Negotiated media types",
		},
		[]string{"media_type"},
	)

	// AuthFailuresTotal counts requests rejected by the authentication
	// middleware.
	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "akzept_auth_failures_total",
			Help: "Requests rejected with 401",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		InFlightRequests,
		NegotiationsTotal,
		NegotiatedTypeTotal,
		AuthFailuresTotal,
	)
}
