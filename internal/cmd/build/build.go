// Package build parses build command flags and renders the site.
package build

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	entrypoint "github.com/louisbranch/portfolio/internal/platform/cmd"
	"github.com/louisbranch/portfolio/internal/site"
)

// Config holds the site build configuration shared by every command that
// renders the site.
type Config struct {
	ContentDir string `env:"PORTFOLIO_CONTENT_DIR" envDefault:"content"`
	OutDir     string `env:"PORTFOLIO_OUT_DIR" envDefault:"public"`
	BaseURL    string `env:"PORTFOLIO_BASE_URL"`
	SiteName   string `env:"PORTFOLIO_SITE_NAME"`
	Drafts     bool   `env:"PORTFOLIO_DRAFTS"`
}

// RegisterFlags binds the build flags, seeded with the current values.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "Content directory holding data/ and posts/")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Output directory, replaced on every build")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public site origin; enables canonical links and sitemap.xml")
	fs.StringVar(&cfg.SiteName, "site-name", cfg.SiteName, "Site name (defaults to the profile name)")
	fs.BoolVar(&cfg.Drafts, "drafts", cfg.Drafts, "Include draft posts")
}

// SiteOptions converts the configuration into builder options.
func (cfg Config) SiteOptions() site.Options {
	return site.Options{
		Content:       os.DirFS(cfg.ContentDir),
		OutDir:        cfg.OutDir,
		BaseURL:       cfg.BaseURL,
		SiteName:      cfg.SiteName,
		IncludeDrafts: cfg.Drafts,
	}
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BuildSite renders the site once and logs a summary.
func BuildSite(ctx context.Context, cfg Config) (site.Result, error) {
	start := time.Now()
	result, err := site.Build(ctx, cfg.SiteOptions())
	if err != nil {
		return site.Result{}, err
	}
	log.Printf("built %d pages (%d posts) into %s in %s", result.Pages, result.Posts, result.OutDir, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// Run builds the site.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBuild, func(ctx context.Context) error {
		_, err := BuildSite(ctx, cfg)
		return err
	})
}
