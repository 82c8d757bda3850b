// Package middleware holds the net/http middleware shared by every route.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware for a public, read-only API. Authentication is
// enforced in front of the service, so credentials are never echoed back.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
			"traceparent",
		},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
