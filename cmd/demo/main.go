package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/rhuss/akzept/pkg/negotiate"
)

func main() {
	fmt.Println("=== akzept negotiation demo ===")
	fmt.Println()

	supported := []string{"application/json", "application/yaml", "text/plain", "text/html"}
	matcher := negotiate.DefaultMatcher()

	// 1. A typical browser header: text/html wins on an exact match.
	browser := "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,*/*;q=0.8"
	mt, ok := matcher.Match(browser, supported)
	fmt.Printf("[1] Browser header match:\n    Accept: %s\n    -> %s (matched=%v)\n", browser, mt, ok)

	// 2. Quality weights reorder the supported list.
	weighted := "text/html;q=0.5, application/yaml"
	mt, _ = matcher.Match(weighted, supported)
	fmt.Printf("\n[2] Quality ordering:\n    Accept: %s\n    -> %s\n", weighted, mt)

	// 3. An exact clause beats wildcards at equal quality.
	wildcards := "*/*, text/*, text/plain"
	mt, _ = matcher.Match(wildcards, supported)
	fmt.Printf("\n[3] Specificity (exact > text/* > */*):\n    Accept: %s\n    -> %s\n", wildcards, mt)

	// 4. The trace facility shows the full parse next to the verdict.
	fmt.Println("\n[4] Negotiation trace:")
	trace := negotiate.Explain(nil, "text/plain;format=flowed;q=0.4, application/json", supported)
	for _, c := range trace.Clauses {
		fmt.Printf("    clause %-18s q=%.2f params=%v\n", c.Type, c.Q, c.Params)
	}
	fmt.Printf("    result: %s (matched=%v)\n", trace.Result, trace.Matched)

	// 5. The middleware in a real pipeline, with response annotation.
	fmt.Println("\n[5] Middleware behavior:")
	handler := negotiate.Middleware(negotiate.Config{
		SupportedTypes:   supported,
		SupplyDefault:    true,
		AnnotateResponse: true,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mt, _ := negotiate.FromContext(r.Context())
		fmt.Fprintf(w, "negotiated %s", mt)
	}))

	demo := func(accept string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		body, _ := io.ReadAll(rec.Result().Body)
		label := accept
		if label == "" {
			label = "(no Accept header)"
		}
		fmt.Printf("    %-28s -> %d Content-Type=%q body=%q\n",
			label, rec.Code, rec.Header().Get("Content-Type"), body)
	}

	demo("application/yaml")
	demo("")
	demo("image/png")

	fmt.Println("\n=== demo complete ===")
}
