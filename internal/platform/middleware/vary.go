package middleware

import (
	"net/http"
	"strings"
)

// Vary lists fields in the Vary header, Accept when none are given, since
// bodies are negotiated between JSON and CBOR. Fields already present are not
// repeated. CORS adds Origin on its own.
func Vary(fields ...string) func(http.Handler) http.Handler {
	if len(fields) == 0 {
		fields = []string{"Accept"}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, f := range fields {
				if !varies(h, f) {
					h.Add("Vary", f)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// varies reports whether field is already named by any Vary value.
func varies(h http.Header, field string) bool {
	for _, v := range h.Values("Vary") {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p == "*" || strings.EqualFold(p, field) {
				return true
			}
		}
	}
	return false
}
