package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Layout wraps body in the shared document shell: head metadata, the icon
// sprite, navigation and footer.
func Layout(page PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		siteName := page.siteName()

		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(ComposePageTitle(page.Title, siteName))
		h.raw("</title>")
		if page.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", page.Description)
			h.raw(">")
		}
		if canonical := AbsoluteURL(page.BaseURL, page.CurrentPath); canonical != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", canonical)
			h.raw(">")
		}
		h.raw(`<link rel="stylesheet" href="/static/site.css">`)
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", siteName)
		h.raw(` href="/feed.xml">`)
		h.raw("</head><body>")

		if page.Icons != nil {
			h.raw(page.Icons.Sprite())
		}

		h.raw(`<header class="site-header"><a class="site-name" href="/">`)
		h.text(siteName)
		h.raw(`</a><nav aria-label="Main"><ul>`)
		for _, item := range navigation {
			h.raw("<li><a")
			h.attr("href", item.path)
			if isCurrentSection(page.CurrentPath, item.path) {
				h.raw(` aria-current="page"`)
			}
			h.raw(">")
			h.text(item.label)
			h.raw("</a></li>")
		}
		h.raw("</ul></nav></header>")

		h.raw(`<main id="content">`)
		h.component(body)
		h.raw("</main>")

		h.raw(`<footer class="site-footer"><p>&copy; `)
		if page.Year > 0 {
			h.raw(strconv.Itoa(page.Year) + " ")
		}
		h.text(siteName)
		h.raw(` · <a href="/feed.xml">`)
		h.icon(page, "rss", "icon")
		h.raw(" RSS</a></p></footer>")
		h.raw("</body></html>")
		return h.err
	})
}
