// Package site renders the loaded content into a static website.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/content"
	"github.com/louisbranch/portfolio/internal/platform/branding"
	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
	"github.com/louisbranch/portfolio/internal/platform/icons"
	platformotel "github.com/louisbranch/portfolio/internal/platform/otel"
	"github.com/louisbranch/portfolio/internal/site/static"
	"github.com/louisbranch/portfolio/internal/site/templates"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const recentPostsOnHome = 5

// Options configures a build.
type Options struct {
	// Content is the content root holding data/ and posts/.
	Content fs.FS
	// OutDir is replaced by the freshly built site.
	OutDir string
	// BaseURL is the public origin. The sitemap is only written when set.
	BaseURL string
	// SiteName overrides the profile name in titles and the feed.
	SiteName      string
	IncludeDrafts bool
	// Icons defaults to the embedded registry.
	Icons *icons.Registry
	// Now defaults to time.Now and only feeds the footer year.
	Now func() time.Time
}

// Result summarizes a successful build.
type Result struct {
	Pages  int
	Posts  int
	OutDir string
}

type page struct {
	file      string
	urlPath   string
	modified  time.Time
	component templ.Component
	// indexed pages are listed in the sitemap.
	indexed bool
}

// Build loads the content and writes the complete site into opts.OutDir.
// The site is assembled in a sibling temporary directory and swapped into
// place only when every file was written, so a failed build leaves the
// previous output untouched.
func Build(ctx context.Context, opts Options) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if opts.Content == nil {
		return Result{}, errors.New("content filesystem is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return Result{}, errors.New("output directory is required")
	}

	ctx, span := platformotel.Tracer("site").Start(ctx, "site.Build")
	defer span.End()

	result, err := build(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Int("site.pages", result.Pages),
		attribute.Int("site.posts", result.Posts),
	)
	return result, nil
}

func build(ctx context.Context, opts Options) (Result, error) {
	registry := opts.Icons
	if registry == nil {
		var err error
		if registry, err = icons.Default(); err != nil {
			return Result{}, err
		}
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	collection, err := content.Load(ctx, opts.Content, content.Options{IncludeDrafts: opts.IncludeDrafts})
	if err != nil {
		return Result{}, err
	}
	if err := validateLinkIcons(collection.Profile, registry); err != nil {
		return Result{}, err
	}

	siteName := strings.TrimSpace(opts.SiteName)
	if siteName == "" {
		siteName = strings.TrimSpace(collection.Profile.Name)
	}
	if siteName == "" {
		siteName = branding.SiteName
	}
	base := templates.PageContext{
		SiteName:    siteName,
		Description: collection.Profile.Headline,
		BaseURL:     opts.BaseURL,
		Icons:       registry,
		Year:        now().Year(),
	}
	pages := sitePages(collection, base)

	outDir := filepath.Clean(opts.OutDir)
	if err := os.MkdirAll(filepath.Dir(outDir), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output parent: %w", err)
	}
	tmpDir, err := os.MkdirTemp(filepath.Dir(outDir), "."+filepath.Base(outDir)+"-build-*")
	if err != nil {
		return Result{}, fmt.Errorf("create build directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(tmpDir)
		}
	}()

	if err := writePages(ctx, tmpDir, pages); err != nil {
		return Result{}, err
	}
	if err := copyStatic(tmpDir); err != nil {
		return Result{}, err
	}

	feed, err := renderFeed(siteName, collection.Profile.Headline, opts.BaseURL, collection.Posts())
	if err != nil {
		return Result{}, fmt.Errorf("render feed: %w", err)
	}
	if err := writeFile(tmpDir, "feed.xml", feed); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(opts.BaseURL) != "" {
		var entries []sitemapEntry
		for _, p := range pages {
			if p.indexed {
				entries = append(entries, sitemapEntry{path: p.urlPath, modified: p.modified})
			}
		}
		sitemap, err := renderSitemap(opts.BaseURL, entries)
		if err != nil {
			return Result{}, fmt.Errorf("render sitemap: %w", err)
		}
		if err := writeFile(tmpDir, "sitemap.xml", sitemap); err != nil {
			return Result{}, err
		}
	}

	if err := replaceDir(tmpDir, outDir); err != nil {
		return Result{}, err
	}
	committed = true

	return Result{
		Pages:  len(pages),
		Posts:  len(collection.Posts()),
		OutDir: outDir,
	}, nil
}

func validateLinkIcons(profile content.Profile, registry *icons.Registry) error {
	for _, link := range profile.Links {
		if link.Icon == "" || registry.Has(link.Icon) {
			continue
		}
		return apperrors.WithMetadata(
			apperrors.CodeIconUnknown,
			fmt.Sprintf("unknown icon %q for link %q in data/profile.yaml", link.Icon, link.Label),
			map[string]string{"icon": link.Icon, "file": "data/profile.yaml"},
		)
	}
	return nil
}

// sitePages lists every HTML page of the site.
func sitePages(c *content.Collection, base templates.PageContext) []page {
	withPage := func(title, urlPath string) templates.PageContext {
		pc := base
		pc.Title = title
		pc.CurrentPath = urlPath
		return pc
	}

	posts := c.Posts()
	var newest time.Time
	if len(posts) > 0 {
		newest = posts[0].LastModified()
	}

	pages := []page{
		{
			file:    "index.html",
			urlPath: "/",
			component: templates.HomePage(withPage("", "/"), templates.HomeParams{
				Profile:     c.Profile,
				Featured:    c.FeaturedProjects(),
				RecentPosts: c.Recent(recentPostsOnHome),
				Work:        c.Work,
				Education:   c.Education,
			}),
			modified: newest,
			indexed:  true,
		},
		{
			file:      "blog/index.html",
			urlPath:   "/blog/",
			component: templates.BlogIndexPage(withPage("Blog", "/blog/"), posts, c.Tags()),
			modified:  newest,
			indexed:   true,
		},
		{
			file:      "projects/index.html",
			urlPath:   "/projects/",
			component: templates.ProjectsPage(withPage("Projects", "/projects/"), c.Projects),
			indexed:   true,
		},
		{
			file:      "404.html",
			urlPath:   "/404.html",
			component: templates.NotFoundPage(withPage(templates.NotFoundPageTitle, "/404.html")),
		},
	}
	for _, post := range posts {
		pc := withPage(post.Title, post.URLPath())
		if post.Summary != "" {
			pc.Description = post.Summary
		}
		pages = append(pages, page{
			file:      path.Join("blog", post.Slug, "index.html"),
			urlPath:   post.URLPath(),
			component: templates.PostPage(pc, post),
			modified:  post.LastModified(),
			indexed:   true,
		})
	}
	for _, tag := range c.Tags() {
		tagged := c.PostsByTag(tag.Tag)
		var modified time.Time
		if len(tagged) > 0 {
			modified = tagged[0].LastModified()
		}
		pages = append(pages, page{
			file:      path.Join("tags", tag.Tag, "index.html"),
			urlPath:   templates.TagPath(tag.Tag),
			component: templates.TagPage(withPage(tag.Label, templates.TagPath(tag.Tag)), tag, tagged),
			modified:  modified,
			indexed:   true,
		})
	}
	return pages
}

func writePages(ctx context.Context, dir string, pages []page) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range pages {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ctx, span := platformotel.Tracer("site").Start(ctx, "site.RenderPage",
				trace.WithAttributes(attribute.String("site.page", p.file)))
			defer span.End()

			var buf bytes.Buffer
			if err := p.component.Render(ctx, &buf); err != nil {
				span.RecordError(err)
				return fmt.Errorf("render %s: %w", p.file, err)
			}
			return writeFile(dir, p.file, buf.Bytes())
		})
	}
	return group.Wait()
}

func copyStatic(dir string) error {
	return fs.WalkDir(static.FS, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static.FS, name)
		if err != nil {
			return fmt.Errorf("read static asset %s: %w", name, err)
		}
		return writeFile(dir, path.Join("static", name), data)
	})
}

func writeFile(dir, name string, data []byte) error {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// replaceDir moves the built tree into place, keeping the previous output
// until the new one is renamed in.
func replaceDir(built, outDir string) error {
	if err := os.Chmod(built, 0o755); err != nil {
		return fmt.Errorf("set output permissions: %w", err)
	}
	backup := ""
	if _, err := os.Stat(outDir); err == nil {
		backup = built + "-previous"
		if err := os.Rename(outDir, backup); err != nil {
			return fmt.Errorf("move previous output aside: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat output directory: %w", err)
	}
	if err := os.Rename(built, outDir); err != nil {
		if backup != "" {
			_ = os.Rename(backup, outDir)
		}
		return fmt.Errorf("move build into place: %w", err)
	}
	if backup != "" {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("remove previous output: %w", err)
		}
	}
	return nil
}
