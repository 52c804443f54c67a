package middleware

import "net/http"

// Vary returns middleware that adds the given field names to the Vary
// response header, so caches key negotiated responses on the request
// headers that influenced them. With no arguments it varies on Accept,
// which suits resources behind the content negotiation middleware; the
// header is added before the handler runs and therefore also covers 406
// rejections.
func Vary(fields ...string) Middleware {
	if len(fields) == 0 {
		fields = []string{"Accept"}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, f := range fields {
				w.Header().Add("Vary", f)
			}
			next.ServeHTTP(w, r)
		})
	}
}
