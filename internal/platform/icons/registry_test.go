package icons

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
)

func TestDefaultRegistryMatchesCatalog(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	var want []string
	for _, def := range Catalog() {
		want = append(want, def.Name)
	}
	slices.Sort(want)
	if got := registry.names; !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestDefaultRegistryIconsAreOutlines(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	width := FormatStrokeWidth(DefaultStrokeWidth)
	for _, name := range registry.names {
		markup := registry.icons[name].root.String()
		if strings.Contains(markup, `fill="#`) || strings.Contains(markup, "url(") {
			t.Fatalf("icon %s kept fill or reference: %q", name, markup)
		}
		for _, match := range strokeWidthPattern.FindAllStringSubmatch(markup, -1) {
			if match[1] != width {
				t.Fatalf("icon %s stroke-width = %q, want %q", name, match[1], width)
			}
		}
		again, err := Outline(markup, DefaultStrokeWidth)
		if err != nil {
			t.Fatalf("Outline(%s markup) error = %v", name, err)
		}
		if again != markup {
			t.Fatalf("icon %s is not stable under Outline:\n%q\n%q", name, markup, again)
		}
	}
}

func TestDefaultRegistryIsShared(t *testing.T) {
	first, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	second, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if first != second {
		t.Fatal("expected Default to return the same registry")
	}
}

func TestNewRegistryNamesFailingAsset(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"ok.svg":     {Data: []byte(`<svg><path d="M0 0"/></svg>`)},
		"broken.svg": {Data: []byte(`<svg><path d="M0 0"`)},
	}
	_, err := NewRegistry(fsys, 1)
	if err == nil {
		t.Fatal("expected error for broken asset")
	}
	if !strings.Contains(err.Error(), "broken.svg") {
		t.Fatalf("error = %q, want asset name", err.Error())
	}
	if !errors.Is(err, ErrMalformedMarkup) {
		t.Fatalf("error = %v, want malformed markup in chain", err)
	}
	if got := apperrors.GetCode(err); got != apperrors.CodeIconAssetInvalid {
		t.Fatalf("GetCode() = %q, want %q", got, apperrors.CodeIconAssetInvalid)
	}
	if asset, ok := apperrors.MetadataValue(err, "asset"); !ok || asset != "broken.svg" {
		t.Fatalf("asset metadata = %q, %t, want broken.svg", asset, ok)
	}
}

func TestNewRegistryRejectsInvalidInputs(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(fstest.MapFS{}, 1); err == nil {
		t.Fatal("expected error for empty asset set")
	}
	fsys := fstest.MapFS{"ok.svg": {Data: []byte(`<svg/>`)}}
	if _, err := NewRegistry(fsys, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewRegistry(width=0) error = %v, want invalid parameter", err)
	}
}

func TestRegistryHasUnknownIcon(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if !registry.Has("mail") {
		t.Fatal("Has() = false for bundled icon")
	}
	if registry.Has("does-not-exist") {
		t.Fatal("Has() = true for unknown icon")
	}
}

func TestSpriteHasOneSymbolPerIcon(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	sprite := registry.Sprite()
	names := registry.names
	if got := strings.Count(sprite, "<symbol"); got != len(names) {
		t.Fatalf("symbol count = %d, want %d", got, len(names))
	}
	for _, name := range names {
		if !strings.Contains(sprite, `id="`+SymbolID(name)+`"`) {
			t.Fatalf("sprite missing symbol for %s", name)
		}
	}
	seen := make(map[string]bool)
	for _, match := range idPattern.FindAllStringSubmatch(sprite, -1) {
		if seen[match[1]] {
			t.Fatalf("duplicate id %q in sprite", match[1])
		}
		seen[match[1]] = true
	}
}

func TestInlineComponentAddsClass(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	var b strings.Builder
	if err := registry.Inline("mail", "icon icon-sm").Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "<svg") || !strings.Contains(got, `class="icon icon-sm"`) || !strings.Contains(got, `aria-hidden="true"`) {
		t.Fatalf("Inline() = %q", got)
	}

	err = registry.Inline("nope", "").Render(context.Background(), &b)
	if apperrors.GetCode(err) != apperrors.CodeIconUnknown {
		t.Fatalf("Render(unknown) error = %v, want unknown icon", err)
	}
}

func TestUseComponentReferencesSymbol(t *testing.T) {
	registry, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	var b strings.Builder
	if err := registry.Use("rss", "").Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `<svg viewBox="0 0 24 24" aria-hidden="true"><use href="#icon-rss"/></svg>`
	if got := b.String(); got != want {
		t.Fatalf("Use() = %q, want %q", got, want)
	}
}
