package content

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"runtime"
	"slices"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
	"golang.org/x/sync/errgroup"
)

const postsGlob = "posts/*.md"

// Options controls how the collection is loaded.
type Options struct {
	// IncludeDrafts keeps posts marked draft, for local previews.
	IncludeDrafts bool
}

// TagCount is one entry of the tag index.
type TagCount struct {
	Tag   string
	Label string
	Count int
}

// Collection is the loaded site content.
type Collection struct {
	Data
	posts  []Post
	bySlug map[string]int
	byTag  map[string][]int
	tags   []TagCount
}

// Load reads the data tables and every post under fsys. Any invalid file
// aborts the load with an error naming the file.
func Load(ctx context.Context, fsys fs.FS, opts Options) (*Collection, error) {
	renderer := NewRenderer()
	data, err := loadData(fsys, renderer)
	if err != nil {
		return nil, err
	}
	posts, err := loadPosts(ctx, fsys, renderer, opts)
	if err != nil {
		return nil, err
	}
	return newCollection(data, posts)
}

func loadPosts(ctx context.Context, fsys fs.FS, renderer *Renderer, opts Options) ([]Post, error) {
	sources, err := fs.Glob(fsys, postsGlob)
	if err != nil {
		return nil, err
	}

	parsed := make([]Post, len(sources))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := fs.ReadFile(fsys, source)
			if err != nil {
				return contentError(source, "read post", err)
			}
			post, err := parsePost(source, raw, renderer)
			if err != nil {
				return contentError(source, "invalid post", err)
			}
			parsed[i] = post
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	posts := parsed[:0]
	for _, post := range parsed {
		if post.Draft && !opts.IncludeDrafts {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// newCollection indexes posts, rejecting duplicate slugs.
func newCollection(data Data, posts []Post) (*Collection, error) {
	slices.SortFunc(posts, func(a, b Post) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})

	c := &Collection{
		Data:   data,
		posts:  posts,
		bySlug: make(map[string]int, len(posts)),
		byTag:  make(map[string][]int),
	}
	for i, post := range posts {
		if prev, dup := c.bySlug[post.Slug]; dup {
			return nil, apperrors.WrapWithMetadata(
				apperrors.CodeDuplicateSlug,
				"duplicate post slug "+post.Slug,
				map[string]string{"slug": post.Slug, "file": post.Source, "other": posts[prev].Source},
				errors.New(posts[prev].Source+" and "+post.Source),
			)
		}
		c.bySlug[post.Slug] = i
		for _, tag := range post.Tags {
			c.byTag[tag] = append(c.byTag[tag], i)
		}
	}
	for tag, indexes := range c.byTag {
		c.tags = append(c.tags, TagCount{Tag: tag, Label: TagLabel(tag), Count: len(indexes)})
	}
	slices.SortFunc(c.tags, func(a, b TagCount) int {
		return cmp.Compare(a.Tag, b.Tag)
	})
	return c, nil
}

// Posts returns the published posts, newest first.
func (c *Collection) Posts() []Post {
	return slices.Clone(c.posts)
}

// Recent returns at most n of the newest posts.
func (c *Collection) Recent(n int) []Post {
	return slices.Clone(c.posts[:min(n, len(c.posts))])
}

// Post looks a post up by slug.
func (c *Collection) Post(slug string) (Post, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Post{}, false
	}
	return c.posts[i], true
}

// Tags returns the tag index sorted by tag.
func (c *Collection) Tags() []TagCount {
	return slices.Clone(c.tags)
}

// PostsByTag returns the posts carrying tag, newest first.
func (c *Collection) PostsByTag(tag string) []Post {
	indexes := c.byTag[tag]
	posts := make([]Post, 0, len(indexes))
	for _, i := range indexes {
		posts = append(posts, c.posts[i])
	}
	return posts
}

// FeaturedProjects returns the projects marked featured.
func (c *Collection) FeaturedProjects() []Project {
	var featured []Project
	for _, project := range c.Projects {
		if project.Featured {
			featured = append(featured, project)
		}
	}
	return featured
}
