package http

import (
	"net/http"
	"strings"
)

// WithStaticMime attaches explicit content-type hints for known site assets.
func WithStaticMime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case strings.HasSuffix(path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
		case path == "/feed.xml":
			w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		case strings.HasSuffix(path, ".xml"):
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		case strings.HasSuffix(path, "/"), strings.HasSuffix(path, ".html"):
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		next.ServeHTTP(w, r)
	})
}
