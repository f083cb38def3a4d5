package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/content"
)

// ProjectsPage lists every project, featured ones first.
func ProjectsPage(page PageContext, projects []content.Project) templ.Component {
	return Layout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newWriter(ctx, w)
		h.raw(`<section class="projects"><h1>Projects</h1>`)
		if len(projects) == 0 {
			h.raw(`<p class="empty">Nothing here yet.</p>`)
		} else {
			writeProjects(h, page, projects)
		}
		h.raw("</section>")
		return h.err
	}))
}

func writeProjects(h *htmlWriter, page PageContext, projects []content.Project) {
	h.raw(`<ul class="project-list">`)
	for _, project := range projects {
		h.raw("<li")
		if project.Featured {
			h.raw(` class="featured"`)
		}
		h.raw("><h3>")
		h.icon(page, "code", "icon")
		h.raw(" ")
		if project.URL != "" {
			h.raw("<a")
			h.url("href", project.URL)
			h.raw(">")
			h.text(project.Name)
			h.raw("</a>")
		} else {
			h.text(project.Name)
		}
		h.raw("</h3>")
		if project.Summary != "" {
			h.raw("<p>")
			h.text(project.Summary)
			h.raw("</p>")
		}
		if project.Repo != "" {
			h.raw(`<p class="repo"><a`)
			h.url("href", project.Repo)
			h.raw(">")
			h.icon(page, "github", "icon")
			h.raw(" Source ")
			h.icon(page, "external-link", "icon")
			h.raw("</a></p>")
		}
		writeTagNames(h, project.Tags)
		h.raw("</li>")
	}
	h.raw("</ul>")
}
