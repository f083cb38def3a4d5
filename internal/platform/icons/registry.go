package icons

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
)

// DefaultStrokeWidth is the line thickness used for the bundled icons.
const DefaultStrokeWidth = 1.5

//go:embed assets/*.svg
var assetsFS embed.FS

// sanitizedIcon is an asset after Outline, ready for inlining.
type sanitizedIcon struct {
	Name    string
	ViewBox string

	root *element
}

// Registry is an immutable set of sanitized icons keyed by name.
type Registry struct {
	strokeWidth float64
	icons       map[string]sanitizedIcon
	names       []string
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(Assets(), DefaultStrokeWidth)
})

// Default returns the registry of bundled icons, sanitizing them on first
// use.
func Default() (*Registry, error) {
	return defaultRegistry()
}

// Assets exposes the raw bundled svg files.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(fmt.Sprintf("icons: embedded assets: %v", err))
	}
	return sub
}

// NewRegistry sanitizes every *.svg file at the root of fsys. The first
// asset that fails aborts construction with an error naming the file.
func NewRegistry(fsys fs.FS, strokeWidth float64) (*Registry, error) {
	if fsys == nil {
		return nil, fmt.Errorf("icon assets are required")
	}
	if err := validateStrokeWidth(strokeWidth); err != nil {
		return nil, err
	}
	files, err := fs.Glob(fsys, "*.svg")
	if err != nil {
		return nil, fmt.Errorf("list icon assets: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no icon assets found")
	}

	registry := &Registry{
		strokeWidth: strokeWidth,
		icons:       make(map[string]sanitizedIcon, len(files)),
		names:       make([]string, 0, len(files)),
	}
	for _, file := range files {
		icon, err := loadIcon(fsys, file, strokeWidth)
		if err != nil {
			return nil, err
		}
		registry.icons[icon.Name] = icon
		registry.names = append(registry.names, icon.Name)
	}
	slices.Sort(registry.names)
	return registry, nil
}

func loadIcon(fsys fs.FS, file string, strokeWidth float64) (sanitizedIcon, error) {
	metadata := map[string]string{"asset": file}
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return sanitizedIcon{}, apperrors.WrapWithMetadata(apperrors.CodeIconAssetInvalid, fmt.Sprintf("read icon asset %s", file), metadata, err)
	}
	root, err := outlineTree(string(raw), strokeWidth)
	if err != nil {
		return sanitizedIcon{}, apperrors.WrapWithMetadata(apperrors.CodeIconAssetInvalid, fmt.Sprintf("sanitize icon asset %s", file), metadata, err)
	}
	viewBox, _ := root.attr("viewBox")
	return sanitizedIcon{
		Name:    strings.TrimSuffix(path.Base(file), ".svg"),
		ViewBox: viewBox,
		root:    root,
	}, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.icons[name]
	return ok
}

func unknownIcon(name string) error {
	return apperrors.WithMetadata(apperrors.CodeIconUnknown, fmt.Sprintf("unknown icon %q", name), map[string]string{"icon": name})
}
