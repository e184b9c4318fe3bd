package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

// newCORSOptions allows credentialed requests from origins, so that
// browsers send the token cookie cross-origin. An empty list allows none.
func newCORSOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(origins) == 0 {
		// go-chi/cors treats an empty list as "*"
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}

	return opts
}
