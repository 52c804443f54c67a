package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rhuss/akzept/pkg/debug"
	"github.com/rhuss/akzept/pkg/negotiate"
)

// Metrics wraps an HTTP handler to record request metrics.
//
// It captures:
//   - akzept_requests_total (counter): incremented per request with method and status class labels
//   - akzept_request_duration_seconds (histogram): request duration with a method label
//   - akzept_requests_in_flight (gauge): incremented while a request is being served
//   - akzept_negotiations_total{outcome="rejected"} (counter): incremented for 406 responses
//
// Place it outermost so the status it observes includes rejections produced
// by middleware deeper in the chain.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		InFlightRequests.Inc()
		defer InFlightRequests.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		// Build a status class label like "2xx", "4xx", "5xx".
		statusStr := strconv.Itoa(sw.status/100) + "xx"

		RequestsTotal.WithLabelValues(r.Method, statusStr).Inc()
		RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

		if sw.status == http.StatusNotAcceptable {
			NegotiationsTotal.WithLabelValues("rejected").Inc()
			debug.Log("negotiate", "not acceptable",
				"method", r.Method,
				"path", r.URL.Path,
				"accept", r.Header.Get("Accept"),
			)
		}
	})
}

// NegotiatedTypes wraps an HTTP handler to count successful negotiations by
// media type. It reads the type the negotiation middleware stored on the
// request context, so it must sit between that middleware and the handler.
func NegotiatedTypes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mt, ok := negotiate.FromContext(r.Context()); ok {
			NegotiationsTotal.WithLabelValues("negotiated").Inc()
			NegotiatedTypeTotal.WithLabelValues(mt.String()).Inc()
			debug.Log("negotiate", "media type negotiated",
				"path", r.URL.Path,
				"media_type", mt.String(),
			)
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// WriteHeader captures the status code and delegates to the underlying writer.
func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Write delegates to the underlying writer and marks the status as written.
func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush delegates to the underlying writer if it implements http.Flusher.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter, enabling http.ResponseController
// and similar utilities to access the original writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
