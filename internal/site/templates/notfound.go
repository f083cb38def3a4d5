package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFoundPageTitle is the title of the 404 page.
const NotFoundPageTitle = "Page not found"

// NotFoundPage renders the 404 page.
func NotFoundPage(page PageContext) templ.Component {
	if page.Title == "" {
		page.Title = NotFoundPageTitle
	}
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<section class="not-found"><h1>`)
		h.text(NotFoundPageTitle)
		h.raw(`</h1><p>The page you are looking for does not exist or has moved.</p><p><a href="/">`)
		h.icon(page, "arrow-left", "icon")
		h.raw(" Back home</a></p></section>")
		return h.err
	}))
}
