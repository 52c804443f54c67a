package negotiate

import "net/http"

// Config controls one negotiation middleware instance. The zero value
// negotiates against an empty supported list and therefore answers 406 Not
// Acceptable to every request; real deployments set SupportedTypes.
type Config struct {
	// SupportedTypes lists the media types the server can produce for the
	// wrapped handler, highest priority first. The first entry doubles as
	// the default representation when SupplyDefault is set.
	SupportedTypes []string

	// SupplyDefault selects the first supported type for requests without
	// an Accept header instead of rejecting them.
	SupplyDefault bool

	// AnnotateResponse forces the response Content-Type header to the
	// negotiated type, replacing whatever the wrapped handler set.
	AnnotateResponse bool

	// Matcher ranks Accept clauses against the supported list. Nil selects
	// DefaultMatcher.
	Matcher Matcher
}

// Middleware returns an http.Handler middleware that negotiates the response
// media type before the wrapped handler runs.
//
// Requests whose Accept header covers none of the supported types are
// answered with an empty 406 Not Acceptable and never reach the handler.
// All other requests reach it with the negotiated type stored on the request
// context; FromContext retrieves it. The incoming request itself is not
// modified: the handler sees a shallow copy carrying the extended context.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	supported := make([]string, len(cfg.SupportedTypes))
	copy(supported, cfg.SupportedTypes)

	matcher := cfg.Matcher
	if matcher == nil {
		matcher = DefaultMatcher()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mt, ok := negotiated(matcher, r.Header.Get("Accept"), supported, cfg.SupplyDefault)
			if !ok {
				w.WriteHeader(http.StatusNotAcceptable)
				return
			}

			r = r.WithContext(ContextWithMediaType(r.Context(), mt))

			if !cfg.AnnotateResponse {
				next.ServeHTTP(w, r)
				return
			}

			aw := &annotatingWriter{ResponseWriter: w, contentType: mt.String()}
			next.ServeHTTP(aw, r)
			aw.annotate()
		})
	}
}

// negotiated resolves the media type for one request: the matcher's verdict
// when a preference header is present, the first supported type when the
// header is absent and defaulting is enabled.
func negotiated(m Matcher, header string, supported []string, supplyDefault bool) (MediaType, bool) {
	if header != "" {
		return m.Match(header, supported)
	}
	if supplyDefault && len(supported) > 0 {
		return MediaType(supported[0]), true
	}
	return "", false
}

// annotatingWriter rewrites the Content-Type header to the negotiated type
// immediately before the first byte of the response is committed, so the
// negotiated value wins over anything the handler set. The trailing annotate
// call in Middleware covers handlers that return without writing.
type annotatingWriter struct {
	http.ResponseWriter
	contentType string
	annotated   bool
}

func (w *annotatingWriter) WriteHeader(statusCode int) {
	w.annotate()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *annotatingWriter) Write(b []byte) (int, error) {
	w.annotate()
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying writer supports it.
func (w *annotatingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *annotatingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *annotatingWriter) annotate() {
	if w.annotated {
		return
	}
	w.annotated = true
	w.Header().Set("Content-Type", w.contentType)
}
