package templates

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/content"
)

const displayDateLayout = "January 2, 2006"

// BlogIndexPage lists every post with the tag index.
func BlogIndexPage(page PageContext, posts []content.Post, tags []content.TagCount) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<section class="blog"><h1>Blog</h1>`)
		if len(posts) == 0 {
			h.raw(`<p class="empty">No posts yet.</p>`)
		} else {
			writePostList(h, page, posts)
		}
		h.raw("</section>")

		if len(tags) > 0 {
			h.raw(`<aside class="tag-index"><h2>`)
			h.icon(page, "tag", "icon")
			h.raw(` Tags</h2><ul class="tags">`)
			for _, tag := range tags {
				h.raw("<li><a")
				h.attr("href", TagPath(tag.Tag))
				h.raw(">")
				h.text(tag.Label)
				h.raw(` <span class="count">`)
				h.raw(strconv.Itoa(tag.Count))
				h.raw("</span></a></li>")
			}
			h.raw("</ul></aside>")
		}
		return h.err
	}))
}

// PostPage renders a single post.
func PostPage(page PageContext, post content.Post) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<article class="post"><header><h1>`)
		h.text(post.Title)
		h.raw(`</h1><p class="meta">`)
		h.icon(page, "calendar", "icon")
		h.raw(" ")
		writeDate(h, post.Date)
		if !post.Updated.IsZero() {
			h.raw(" · updated ")
			writeDate(h, post.Updated)
		}
		h.raw(" · ")
		h.text(readingTime(post.ReadingMinutes))
		h.raw("</p>")
		writeTagLinks(h, post.Tags)
		h.raw(`</header><div class="post-body">`)
		h.raw(string(post.Body))
		h.raw(`</div><footer><a href="/blog/">`)
		h.icon(page, "arrow-left", "icon")
		h.raw(" All posts</a></footer></article>")
		return h.err
	}))
}

// TagPage lists the posts carrying one tag.
func TagPage(page PageContext, tag content.TagCount, posts []content.Post) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<section class="tag"><h1>`)
		h.icon(page, "tag", "icon")
		h.raw(" ")
		h.text(tag.Label)
		h.raw("</h1>")
		writePostList(h, page, posts)
		h.raw(`<p><a href="/blog/">`)
		h.icon(page, "arrow-left", "icon")
		h.raw(" All posts</a></p></section>")
		return h.err
	}))
}

func writePostList(h *htmlWriter, page PageContext, posts []content.Post) {
	h.raw(`<ul class="post-list">`)
	for _, post := range posts {
		h.raw("<li><h3><a")
		h.attr("href", post.URLPath())
		h.raw(">")
		h.text(post.Title)
		h.raw(`</a></h3><p class="meta">`)
		writeDate(h, post.Date)
		h.raw(" · ")
		h.text(readingTime(post.ReadingMinutes))
		h.raw("</p>")
		if post.Summary != "" {
			h.raw(`<p class="summary">`)
			h.text(post.Summary)
			h.raw("</p>")
		}
		h.raw("</li>")
	}
	h.raw("</ul>")
}

func writeTagLinks(h *htmlWriter, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.raw(`<ul class="tags">`)
	for _, tag := range tags {
		h.raw("<li><a")
		h.attr("href", TagPath(tag))
		h.raw(">")
		h.text(content.TagLabel(tag))
		h.raw("</a></li>")
	}
	h.raw("</ul>")
}

func writeDate(h *htmlWriter, t time.Time) {
	h.raw("<time")
	h.attr("datetime", t.Format("2006-01-02"))
	h.raw(">")
	h.text(t.Format(displayDateLayout))
	h.raw("</time>")
}

func readingTime(minutes int) string {
	if minutes <= 1 {
		return "1 min read"
	}
	return strconv.Itoa(minutes) + " min read"
}
