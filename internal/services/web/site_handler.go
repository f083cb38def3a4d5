package web

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/platform/icons"
	"github.com/louisbranch/portfolio/internal/site/templates"
)

// siteHandler serves files from the site directory, resolving directory
// URLs to their index.html.
type siteHandler struct {
	dir      string
	siteName string
	icons    *icons.Registry
}

func newSiteHandler(dir, siteName string, registry *icons.Registry) *siteHandler {
	return &siteHandler{dir: dir, siteName: siteName, icons: registry}
}

func (h *siteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// DirFS resolves the directory on every open, so a rebuilt site that was
	// renamed into place is served immediately.
	fsys := os.DirFS(h.dir)
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(fsys, name)
	if err == nil && info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		name = path.Join(name, "index.html")
		info, err = fs.Stat(fsys, name)
	}
	if err != nil || info.IsDir() {
		h.notFound(w, r)
		return
	}
	http.ServeFileFS(w, r, fsys, name)
}

func (h *siteHandler) notFound(w http.ResponseWriter, r *http.Request) {
	page := templates.PageContext{
		SiteName:    h.siteName,
		Title:       templates.NotFoundPageTitle,
		CurrentPath: r.URL.Path,
		Icons:       h.icons,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templ.Handler(templates.NotFoundPage(page), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}
