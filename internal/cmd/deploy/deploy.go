// Package deploy parses deploy command flags, builds the site and publishes
// it.
package deploy

import (
	"context"
	"flag"
	"fmt"
	"log"

	buildcmd "github.com/louisbranch/portfolio/internal/cmd/build"
	sitedeploy "github.com/louisbranch/portfolio/internal/deploy"
	entrypoint "github.com/louisbranch/portfolio/internal/platform/cmd"
)

// Config holds the deploy command configuration.
type Config struct {
	buildcmd.Config
	Host       string `env:"PORTFOLIO_DEPLOY_HOST"`
	User       string `env:"PORTFOLIO_DEPLOY_USER"`
	RemotePath string `env:"PORTFOLIO_DEPLOY_PATH"`
	SSHPort    int    `env:"PORTFOLIO_DEPLOY_SSH_PORT" envDefault:"22"`
	RsyncBin   string `env:"PORTFOLIO_DEPLOY_RSYNC" envDefault:"rsync"`
	SSHBin     string `env:"PORTFOLIO_DEPLOY_SSH" envDefault:"ssh"`
	DryRun     bool   `env:"PORTFOLIO_DEPLOY_DRY_RUN"`
	Delete     bool   `env:"PORTFOLIO_DEPLOY_DELETE" envDefault:"true"`
	// SkipBuild deploys the existing output directory as is.
	SkipBuild bool `env:"PORTFOLIO_DEPLOY_SKIP_BUILD"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Remote host")
	fs.StringVar(&cfg.User, "user", cfg.User, "Remote user")
	fs.StringVar(&cfg.RemotePath, "path", cfg.RemotePath, "Remote directory receiving the site")
	fs.IntVar(&cfg.SSHPort, "ssh-port", cfg.SSHPort, "Remote ssh port")
	fs.StringVar(&cfg.RsyncBin, "rsync", cfg.RsyncBin, "rsync binary")
	fs.StringVar(&cfg.SSHBin, "ssh", cfg.SSHBin, "ssh binary")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Report changes without transferring")
	fs.BoolVar(&cfg.Delete, "delete", cfg.Delete, "Remove remote files missing from the site")
	fs.BoolVar(&cfg.SkipBuild, "skip-build", cfg.SkipBuild, "Deploy the existing output directory without rebuilding")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Target converts the command configuration into deploy inputs.
func (cfg Config) Target() sitedeploy.Config {
	return sitedeploy.Config{
		Host:       cfg.Host,
		User:       cfg.User,
		RemotePath: cfg.RemotePath,
		SSHPort:    cfg.SSHPort,
		RsyncBin:   cfg.RsyncBin,
		SSHBin:     cfg.SSHBin,
		DryRun:     cfg.DryRun,
		Delete:     cfg.Delete,
	}
}

// Run builds the site and syncs it to the remote host.
func Run(ctx context.Context, cfg Config) error {
	return RunWithRunner(ctx, cfg, nil)
}

// RunWithRunner is Run with an injectable command runner.
func RunWithRunner(ctx context.Context, cfg Config, runner sitedeploy.Runner) error {
	target := cfg.Target()
	if err := target.Validate(); err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDeploy, func(ctx context.Context) error {
		if !cfg.SkipBuild {
			if _, err := buildcmd.BuildSite(ctx, cfg.Config); err != nil {
				return fmt.Errorf("build site: %w", err)
			}
		}
		result, err := sitedeploy.NewDeployer(runner).Deploy(ctx, target, cfg.OutDir)
		if err != nil {
			return err
		}
		if result.DryRun {
			log.Printf("dry run against %s:\n%s", result.Target, result.Output)
			return nil
		}
		log.Printf("deployed %s to %s", cfg.OutDir, result.Target)
		return nil
	})
}
