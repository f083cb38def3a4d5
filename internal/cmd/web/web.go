// Package web parses preview command flags and serves the built site.
package web

import (
	"context"
	"flag"
	"fmt"

	buildcmd "github.com/louisbranch/portfolio/internal/cmd/build"
	entrypoint "github.com/louisbranch/portfolio/internal/platform/cmd"
	"github.com/louisbranch/portfolio/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	buildcmd.Config
	HTTPAddr string `env:"PORTFOLIO_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	Watch    bool   `env:"PORTFOLIO_WEB_WATCH" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Rebuild the site when content changes")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig converts the command configuration into server inputs.
func (cfg Config) ServerConfig() web.Config {
	serverCfg := web.Config{
		HTTPAddr: cfg.HTTPAddr,
		SiteDir:  cfg.OutDir,
		SiteName: cfg.SiteName,
	}
	if cfg.Watch {
		serverCfg.WatchDir = cfg.ContentDir
		serverCfg.Rebuild = func(ctx context.Context) error {
			_, err := buildcmd.BuildSite(ctx, cfg.Config)
			return err
		}
	}
	return serverCfg
}

// Run builds the site once and serves it until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		if _, err := buildcmd.BuildSite(ctx, cfg.Config); err != nil {
			return fmt.Errorf("initial build: %w", err)
		}
		server, err := web.NewServer(cfg.ServerConfig())
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
