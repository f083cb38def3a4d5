package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio/internal/platform/icons"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	webhttp "github.com/louisbranch/portfolio/internal/services/web/transport/http"
	"github.com/louisbranch/portfolio/internal/services/web/transport/httpmux"
)

// Config defines the inputs for the preview server.
type Config struct {
	HTTPAddr string
	// SiteDir is the built site served at /.
	SiteDir  string
	SiteName string
	// Icons renders the fallback 404 page; defaults to the embedded set.
	Icons *icons.Registry
	// WatchDir enables watch mode when set together with Rebuild.
	WatchDir string
	Rebuild  RebuildFunc
	// Debounce defaults to timeouts.RebuildDebounce.
	Debounce time.Duration
}

// Server hosts the preview HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	config     Config
}

// NewHandler creates the HTTP handler serving the site directory.
func NewHandler(config Config) (http.Handler, error) {
	if strings.TrimSpace(config.SiteDir) == "" {
		return nil, errors.New("site directory is required")
	}
	registry := config.Icons
	if registry == nil {
		var err error
		if registry, err = icons.Default(); err != nil {
			return nil, fmt.Errorf("load icons: %w", err)
		}
	}

	mux := http.NewServeMux()
	httpmux.MountHealth(mux)
	httpmux.MountSite(mux, newSiteHandler(config.SiteDir, config.SiteName, registry), webhttp.WithStaticMime)
	return mux, nil
}

// NewServer builds a configured preview server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(config.WatchDir) != "" && config.Rebuild == nil {
		return nil, errors.New("watch mode requires a rebuild function")
	}
	if config.Debounce <= 0 {
		config.Debounce = timeouts.RebuildDebounce
	}

	handler, err := NewHandler(config)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		config: config,
	}, nil
}

// ListenAndServe serves HTTP requests until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	if s.config.WatchDir != "" {
		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		watcher, err := NewWatcher(s.config.WatchDir, s.config.Debounce, s.config.Rebuild)
		if err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		go func() {
			if err := watcher.Run(watchCtx); err != nil {
				log.Printf("content watcher stopped: %v", err)
			}
		}()
		log.Printf("watching %s for changes", s.config.WatchDir)
	}

	serveErr := make(chan error, 1)
	log.Printf("preview listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
