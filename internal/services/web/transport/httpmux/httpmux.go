package httpmux

import (
	"net/http"
)

// HealthPath answers liveness probes.
const HealthPath = "/healthz"

// MountHealth wires the liveness probe into the root mux.
func MountHealth(rootMux *http.ServeMux) {
	if rootMux == nil {
		return
	}
	rootMux.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

// MountSite wires the site handler under root, optionally wrapped with
// content-type hints.
func MountSite(rootMux *http.ServeMux, site http.Handler, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || site == nil {
		return
	}
	if withStaticMime != nil {
		site = withStaticMime(site)
	}
	rootMux.Handle("/", site)
}
