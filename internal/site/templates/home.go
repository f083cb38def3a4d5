package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/content"
)

// HomeParams holds the home page data.
type HomeParams struct {
	Profile     content.Profile
	Featured    []content.Project
	RecentPosts []content.Post
	Work        []content.Job
	Education   []content.Education
}

// HomePage renders the profile summary, featured projects, recent posts and
// the work and education history.
func HomePage(page PageContext, params HomeParams) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		profile := params.Profile

		h.raw(`<section class="profile"><h1>`)
		h.text(profile.Name)
		h.raw("</h1>")
		if profile.Headline != "" {
			h.raw(`<p class="headline">`)
			h.text(profile.Headline)
			h.raw("</p>")
		}
		if profile.Location != "" {
			h.raw(`<p class="location">`)
			h.icon(page, "map-pin", "icon")
			h.raw(" ")
			h.text(profile.Location)
			h.raw("</p>")
		}
		if profile.AboutHTML != "" {
			h.raw(`<div class="about">`)
			h.raw(string(profile.AboutHTML))
			h.raw("</div>")
		}
		if len(profile.Links) > 0 || profile.Email != "" {
			h.raw(`<ul class="links">`)
			for _, link := range profile.Links {
				h.raw("<li><a")
				h.url("href", link.URL)
				h.raw(` rel="me">`)
				h.inlineIcon(page, link.Icon, "icon icon-link")
				h.raw(" ")
				h.text(link.Label)
				h.raw("</a></li>")
			}
			if profile.Email != "" {
				h.raw("<li><a")
				h.url("href", "mailto:"+profile.Email)
				h.raw(">")
				h.icon(page, "mail", "icon")
				h.raw(" ")
				h.text(profile.Email)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")

		if len(params.Featured) > 0 {
			h.raw(`<section class="featured"><h2>Featured projects</h2>`)
			writeProjects(h, page, params.Featured)
			h.raw(`<p><a href="/projects/">All projects</a></p></section>`)
		}

		if len(params.RecentPosts) > 0 {
			h.raw(`<section class="recent"><h2>Recent posts</h2>`)
			writePostList(h, page, params.RecentPosts)
			h.raw(`<p><a href="/blog/">All posts</a></p></section>`)
		}

		if len(params.Work) > 0 {
			h.raw(`<section class="work"><h2>`)
			h.icon(page, "briefcase", "icon")
			h.raw(` Experience</h2><ol class="timeline">`)
			for _, job := range params.Work {
				h.raw(`<li><h3>`)
				h.text(job.Title)
				h.raw(" · ")
				if job.URL != "" {
					h.raw("<a")
					h.url("href", job.URL)
					h.raw(">")
					h.text(job.Company)
					h.raw("</a>")
				} else {
					h.text(job.Company)
				}
				h.raw("</h3>")
				writePeriod(h, page, job.Start, job.End, job.Location)
				writeHighlights(h, job.Highlights)
				writeTagNames(h, job.Tags)
				h.raw("</li>")
			}
			h.raw("</ol></section>")
		}

		if len(params.Education) > 0 {
			h.raw(`<section class="education"><h2>`)
			h.icon(page, "graduation-cap", "icon")
			h.raw(` Education</h2><ol class="timeline">`)
			for _, entry := range params.Education {
				h.raw("<li><h3>")
				h.text(entry.Degree)
				h.raw(" · ")
				h.text(entry.Institution)
				h.raw("</h3>")
				writePeriod(h, page, entry.Start, entry.End, "")
				writeHighlights(h, entry.Highlights)
				h.raw("</li>")
			}
			h.raw("</ol></section>")
		}
		return h.err
	}))
}

func writePeriod(h *htmlWriter, page PageContext, start, end content.YearMonth, location string) {
	h.raw(`<p class="period">`)
	h.icon(page, "calendar", "icon")
	h.raw(" ")
	h.text(content.Period(start, end))
	if location != "" {
		h.raw(" · ")
		h.text(location)
	}
	h.raw("</p>")
}

func writeHighlights(h *htmlWriter, highlights []string) {
	if len(highlights) == 0 {
		return
	}
	h.raw("<ul>")
	for _, highlight := range highlights {
		h.raw("<li>")
		h.text(highlight)
		h.raw("</li>")
	}
	h.raw("</ul>")
}

// writeTagNames renders free-form labels that have no tag page.
func writeTagNames(h *htmlWriter, tags []string) {
	if len(tags) == 0 {
		return
	}
	h.raw(`<ul class="tags">`)
	for _, tag := range tags {
		h.raw("<li>")
		h.text(tag)
		h.raw("</li>")
	}
	h.raw("</ul>")
}
