// Package icons parses icon command flags and runs the icon tooling:
// normalizing standalone svg files and printing the icon catalog.
package icons

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	entrypoint "github.com/louisbranch/portfolio/internal/platform/cmd"
	"github.com/louisbranch/portfolio/internal/platform/icons"
)

// Subcommands.
const (
	CommandOutline = "outline"
	CommandCatalog = "catalog"
)

// Config holds icons command configuration.
type Config struct {
	Command string
	// StrokeWidthText is the stroke width as given in the environment or on
	// the command line. ParseConfig resolves it into StrokeWidth.
	StrokeWidthText string `env:"PORTFOLIO_ICONS_STROKE_WIDTH" envDefault:"1.5"`
	StrokeWidth     float64
	Files           []string
}

// ParseConfig parses environment, the subcommand and its flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if len(args) == 0 {
		return Config{}, fmt.Errorf("usage: icons <%s|%s> [flags]", CommandOutline, CommandCatalog)
	}
	cfg.Command = args[0]

	switch cfg.Command {
	case CommandOutline:
		fs.StringVar(&cfg.StrokeWidthText, "stroke-width", cfg.StrokeWidthText, "Stroke width applied to every outline")
		if err := entrypoint.ParseArgs(fs, args[1:]); err != nil {
			return Config{}, err
		}
		width, err := icons.ParseStrokeWidth(cfg.StrokeWidthText)
		if err != nil {
			return Config{}, fmt.Errorf("stroke width: %w", err)
		}
		cfg.StrokeWidth = width
		cfg.Files = fs.Args()
		if len(cfg.Files) == 0 {
			return Config{}, errors.New("outline requires at least one svg file")
		}
	case CommandCatalog:
		if err := entrypoint.ParseArgs(fs, args[1:]); err != nil {
			return Config{}, err
		}
		if fs.NArg() != 0 {
			return Config{}, errors.New("catalog takes no arguments")
		}
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return cfg, nil
}

// Run executes the configured subcommand, writing results to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceIcons, func(context.Context) error {
		switch cfg.Command {
		case CommandOutline:
			return outlineFiles(cfg.Files, cfg.StrokeWidth, out)
		case CommandCatalog:
			_, err := io.WriteString(out, icons.CatalogMarkdown())
			return err
		default:
			return fmt.Errorf("unknown command %q", cfg.Command)
		}
	})
}

func outlineFiles(files []string, strokeWidth float64, out io.Writer) error {
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		outlined, err := icons.Outline(string(raw), strokeWidth)
		if err != nil {
			return fmt.Errorf("outline %s: %w", file, err)
		}
		if _, err := fmt.Fprintln(out, outlined); err != nil {
			return err
		}
	}
	return nil
}
