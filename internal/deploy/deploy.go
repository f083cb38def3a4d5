// Package deploy publishes a built site to a remote host with rsync over
// ssh.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
	platformotel "github.com/louisbranch/portfolio/internal/platform/otel"
	"github.com/louisbranch/portfolio/internal/platform/timeouts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultRsyncBin = "rsync"
	defaultSSHBin   = "ssh"
	defaultSSHPort  = 22
	outputTailLines = 20
)

// Config describes the deploy target.
type Config struct {
	Host       string
	User       string
	RemotePath string
	SSHPort    int
	RsyncBin   string
	SSHBin     string
	// DryRun asks rsync to report changes without transferring.
	DryRun bool
	// Delete removes remote files that are no longer in the site.
	Delete bool
}

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Result reports a finished sync.
type Result struct {
	Target string
	DryRun bool
	// Output is the tail of the command output.
	Output string
}

// Deployer syncs site directories through a Runner.
type Deployer struct {
	runner Runner
}

// NewDeployer returns a Deployer; a nil runner uses ExecRunner.
func NewDeployer(runner Runner) *Deployer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Deployer{runner: runner}
}

// Deploy syncs siteDir with the exec runner.
func Deploy(ctx context.Context, cfg Config, siteDir string) (Result, error) {
	return NewDeployer(nil).Deploy(ctx, cfg, siteDir)
}

// Validate reports configuration problems as DEPLOY_CONFIG_INVALID.
func (c Config) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"host", c.Host},
		{"user", c.User},
		{"remote path", c.RemotePath},
	} {
		value := strings.TrimSpace(field.value)
		if value == "" {
			return configError(field.name + " is required")
		}
		if strings.HasPrefix(value, "-") || strings.ContainsAny(value, " \t\n") {
			return configError(fmt.Sprintf("invalid %s %q", field.name, field.value))
		}
	}
	if strings.ContainsAny(c.Host, "@:") || strings.ContainsAny(c.User, "@:") {
		return configError("host and user must not contain '@' or ':'")
	}
	if c.SSHPort < 0 || c.SSHPort > 65535 {
		return configError("ssh port must be between 1 and 65535")
	}
	return nil
}

// Target is the rsync destination, user@host:path.
func (c Config) Target() string {
	return strings.TrimSpace(c.User) + "@" + strings.TrimSpace(c.Host) + ":" + strings.TrimSpace(c.RemotePath)
}

// Command returns the rsync binary and arguments that publish siteDir.
// The trailing slash on the source syncs the directory's contents rather
// than the directory itself.
func (c Config) Command(siteDir string) (string, []string) {
	rsync := strings.TrimSpace(c.RsyncBin)
	if rsync == "" {
		rsync = defaultRsyncBin
	}
	ssh := strings.TrimSpace(c.SSHBin)
	if ssh == "" {
		ssh = defaultSSHBin
	}
	port := c.SSHPort
	if port == 0 {
		port = defaultSSHPort
	}

	args := []string{"-az"}
	if c.Delete {
		args = append(args, "--delete")
	}
	if c.DryRun {
		args = append(args, "--dry-run", "--itemize-changes")
	}
	args = append(args,
		"-e", ssh+" -p "+strconv.Itoa(port),
		strings.TrimRight(siteDir, string(filepath.Separator))+string(filepath.Separator),
		c.Target(),
	)
	return rsync, args
}

// Deploy validates the configuration and syncs siteDir to the target,
// bounded by timeouts.Deploy.
func (d *Deployer) Deploy(ctx context.Context, cfg Config, siteDir string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	info, err := os.Stat(siteDir)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeNotFound, "site directory not found: "+siteDir, map[string]string{"dir": siteDir}, err)
	}
	if err != nil {
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeDeployConfigInvalid, "site directory unavailable", map[string]string{"dir": siteDir}, err)
	}
	if !info.IsDir() {
		return Result{}, apperrors.WithMetadata(apperrors.CodeDeployConfigInvalid, "site path is not a directory: "+siteDir, map[string]string{"dir": siteDir})
	}

	ctx, span := platformotel.Tracer("deploy").Start(ctx, "deploy.Sync")
	defer span.End()
	span.SetAttributes(
		attribute.String("deploy.host", cfg.Host),
		attribute.Bool("deploy.dry_run", cfg.DryRun),
	)

	ctx, cancel := context.WithTimeout(ctx, timeouts.Deploy)
	defer cancel()

	name, args := cfg.Command(siteDir)
	output, err := d.runner.Run(ctx, name, args...)
	tail := outputTail(output, outputTailLines)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		message := "rsync to " + cfg.Target() + " failed"
		if tail != "" {
			message += "\n" + tail
		}
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeDeployFailed, message, map[string]string{
			"target": cfg.Target(),
			"output": tail,
		}, err)
	}
	return Result{Target: cfg.Target(), DryRun: cfg.DryRun, Output: tail}, nil
}

func configError(message string) error {
	return apperrors.New(apperrors.CodeDeployConfigInvalid, "invalid deploy config: "+message)
}

// outputTail keeps the last n non-empty lines of command output.
func outputTail(output []byte, n int) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
