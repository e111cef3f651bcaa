// Package apicors provides CORS middleware for the read-only report API.
//
// The JSON views carry no credentials, so other sites may read them:
//   - Credentials (cookies) are never allowed
//   - Origins can be "*" or a fixed list
//   - Only safe methods are allowed
package apicors

import (
	"net/http"
	"strings"
)

const (
	allowMethods = "GET, HEAD, OPTIONS"
	allowHeaders = "Accept, Content-Type"
	maxAge       = "86400" // 24 hours
)

// Middleware returns CORS middleware for the report API.
//
// With no origins, or with "*" among them, any origin may read the API.
// Otherwise only the listed origins get an Access-Control-Allow-Origin header.
//
// Usage in routes.go:
//
//	r.Route("/api/report", func(r chi.Router) {
//	    r.Use(apicors.Middleware(appCfg.APICORSOrigins...))
//	    r.Mount("/", reportfeature.APIRoutes(reportHandler))
//	})
func Middleware(allowedOrigins ...string) func(http.Handler) http.Handler {
	anyOrigin := len(allowedOrigins) == 0
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			anyOrigin = true
		}
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if anyOrigin {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origin != "" {
				if _, allowed := originSet[origin]; allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
				// If origin not allowed, don't set CORS headers (browser will block)
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
			w.Header().Set("Access-Control-Max-Age", maxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ParseOrigins splits a comma-separated origin list, dropping blanks.
func ParseOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
