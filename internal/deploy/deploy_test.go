package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
)

type fakeRunner struct {
	name     string
	args     []string
	output   []byte
	err      error
	deadline bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	_, f.deadline = ctx.Deadline()
	return f.output, f.err
}

func validConfig() Config {
	return Config{Host: "example.com", User: "deploy", RemotePath: "/var/www/site"}
}

func TestCommandDefaults(t *testing.T) {
	t.Parallel()

	name, args := validConfig().Command("/tmp/public")
	if name != "rsync" {
		t.Fatalf("name = %q, want rsync", name)
	}
	want := []string{"-az", "-e", "ssh -p 22", "/tmp/public/", "deploy@example.com:/var/www/site"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandWithOptions(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.SSHPort = 2222
	cfg.RsyncBin = "/usr/local/bin/rsync"
	cfg.SSHBin = "/usr/bin/ssh"
	cfg.Delete = true
	cfg.DryRun = true

	name, args := cfg.Command("/tmp/public/")
	if name != "/usr/local/bin/rsync" {
		t.Fatalf("name = %q", name)
	}
	want := []string{"-az", "--delete", "--dry-run", "--itemize-changes", "-e", "/usr/bin/ssh -p 2222", "/tmp/public/", "deploy@example.com:/var/www/site"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]func(*Config){
		"missing host":    func(c *Config) { c.Host = "" },
		"missing user":    func(c *Config) { c.User = " " },
		"missing path":    func(c *Config) { c.RemotePath = "" },
		"flag host":       func(c *Config) { c.Host = "-oProxyCommand=x" },
		"host with space": func(c *Config) { c.Host = "a b" },
		"user with at":    func(c *Config) { c.User = "a@b" },
		"bad port":        func(c *Config) { c.SSHPort = 70000 },
	}
	for name, edit := range tests {
		cfg := validConfig()
		edit(&cfg)
		err := cfg.Validate()
		if apperrors.GetCode(err) != apperrors.CodeDeployConfigInvalid {
			t.Fatalf("%s: err = %v, want %s", name, err, apperrors.CodeDeployConfigInvalid)
		}
	}
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}
}

func TestDeployRunsRsync(t *testing.T) {
	t.Parallel()

	siteDir := t.TempDir()
	runner := &fakeRunner{output: []byte("sent 10 bytes\n")}
	result, err := NewDeployer(runner).Deploy(context.Background(), validConfig(), siteDir)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if runner.name != "rsync" {
		t.Fatalf("runner name = %q, want rsync", runner.name)
	}
	if got := runner.args[len(runner.args)-2]; got != siteDir+"/" {
		t.Fatalf("source = %q, want %q", got, siteDir+"/")
	}
	if !runner.deadline {
		t.Fatal("expected deploy context to carry a deadline")
	}
	want := Result{Target: "deploy@example.com:/var/www/site", Output: "sent 10 bytes"}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("Result mismatch (-want +got):\n%s", diff)
	}
}

func TestDeployFailureIncludesOutputTail(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := range 30 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	runner := &fakeRunner{output: []byte(strings.Join(lines, "\n")), err: errors.New("exit status 23")}
	_, err := NewDeployer(runner).Deploy(context.Background(), validConfig(), t.TempDir())
	if apperrors.GetCode(err) != apperrors.CodeDeployFailed {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeDeployFailed)
	}
	output, _ := apperrors.MetadataValue(err, "output")
	if strings.Contains(output, "line 9\n") || !strings.HasPrefix(output, "line 10") || !strings.HasSuffix(output, "line 29") {
		t.Fatalf("output tail = %q, want lines 10-29", output)
	}
	if !strings.Contains(err.Error(), "exit status 23") || !strings.Contains(err.Error(), "line 29") {
		t.Fatalf("error %q missing cause or output", err)
	}
}

func TestDeployReportsContextErrors(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	runner := &fakeRunner{err: errors.New("signal: killed")}
	_, err := NewDeployer(runner).Deploy(ctx, validConfig(), t.TempDir())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestDeployValidatesBeforeRunning(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	cfg := validConfig()
	cfg.Host = ""
	if _, err := NewDeployer(runner).Deploy(context.Background(), cfg, t.TempDir()); apperrors.GetCode(err) != apperrors.CodeDeployConfigInvalid {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeDeployConfigInvalid)
	}
	if _, err := NewDeployer(runner).Deploy(context.Background(), validConfig(), "/does/not/exist"); apperrors.GetCode(err) != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeNotFound)
	}
	if runner.name != "" {
		t.Fatalf("runner called with %q, want no call", runner.name)
	}
}

func TestOutputTail(t *testing.T) {
	t.Parallel()

	if got := outputTail(nil, 5); got != "" {
		t.Fatalf("outputTail(nil) = %q, want empty", got)
	}
	if got := outputTail([]byte("a\nb\nc\n"), 2); got != "b\nc" {
		t.Fatalf("outputTail = %q, want %q", got, "b\nc")
	}
}
