package httpmux

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountHealth(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	MountHealth(rootMux)

	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("%s status = %d, want %d", HealthPath, rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "ok" {
		t.Fatalf("%s body = %q, want %q", HealthPath, body, "ok")
	}
}

func TestMountSiteWrapsHandler(t *testing.T) {
	t.Parallel()

	rootMux := http.NewServeMux()
	site := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("site:" + r.URL.Path))
	})
	wrapped := false
	MountSite(rootMux, site, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = true
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	rootMux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/", nil))
	if body := rec.Body.String(); body != "site:/blog/" {
		t.Fatalf("body = %q, want %q", body, "site:/blog/")
	}
	if !wrapped {
		t.Fatal("expected middleware to wrap the site handler")
	}
}

func TestMountIgnoresNilMux(t *testing.T) {
	t.Parallel()

	MountHealth(nil)
	MountSite(nil, http.NotFoundHandler(), nil)
}
