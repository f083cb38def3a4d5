package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

var dateLayouts = []string{dateLayout, time.RFC3339}

// Post is a rendered blog post.
type Post struct {
	Slug    string
	Title   string
	Summary string
	Date    time.Time
	// Updated is zero when the post was never revised.
	Updated        time.Time
	Tags           []string
	Draft          bool
	Body           template.HTML
	WordCount      int
	ReadingMinutes int
	// Source is the path of the Markdown file within the content root.
	Source string
}

// URLPath is the site-relative path of the post page.
func (p Post) URLPath() string {
	return "/blog/" + p.Slug + "/"
}

// LastModified returns Updated when set and Date otherwise.
func (p Post) LastModified() time.Time {
	if p.Updated.After(p.Date) {
		return p.Updated
	}
	return p.Date
}

type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Updated string   `yaml:"updated"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
	Slug    string   `yaml:"slug"`
	Draft   bool     `yaml:"draft"`
}

// parsePost reads one Markdown source with its front matter.
func parsePost(source string, raw []byte, renderer *Renderer) (Post, error) {
	front, body, err := splitFrontMatter(raw)
	if err != nil {
		return Post{}, err
	}

	var meta frontMatter
	dec := yaml.NewDecoder(bytes.NewReader(front))
	dec.KnownFields(true)
	if err := dec.Decode(&meta); err != nil {
		return Post{}, fmt.Errorf("front matter: %w", err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return Post{}, errors.New("title is required")
	}
	if strings.TrimSpace(meta.Date) == "" {
		return Post{}, errors.New("date is required")
	}
	date, err := parseDate(meta.Date)
	if err != nil {
		return Post{}, err
	}
	var updated time.Time
	if strings.TrimSpace(meta.Updated) != "" {
		if updated, err = parseDate(meta.Updated); err != nil {
			return Post{}, err
		}
	}

	slug := meta.Slug
	if strings.TrimSpace(slug) == "" {
		slug = strings.TrimSuffix(path.Base(source), path.Ext(source))
	}
	slug = Slugify(slug)
	if slug == "" {
		return Post{}, errors.New("slug is empty after normalizing")
	}

	html, err := renderer.Render(body)
	if err != nil {
		return Post{}, fmt.Errorf("render markdown: %w", err)
	}
	text := PlainText(string(html))
	words := len(strings.Fields(text))

	summary := strings.TrimSpace(meta.Summary)
	if summary == "" {
		summary = Excerpt(text)
	}

	return Post{
		Slug:           slug,
		Title:          title,
		Summary:        summary,
		Date:           date,
		Updated:        updated,
		Tags:           normalizeTags(meta.Tags),
		Draft:          meta.Draft,
		Body:           html,
		WordCount:      words,
		ReadingMinutes: ReadingMinutes(words),
		Source:         source,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want %s", value, dateLayout)
}

// splitFrontMatter separates the YAML block delimited by "---" lines from
// the Markdown body.
func splitFrontMatter(raw []byte) ([]byte, []byte, error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	first, rest, ok := bytes.Cut(raw, []byte("\n"))
	if !ok || string(bytes.TrimRight(first, " \t")) != "---" {
		return nil, nil, errors.New("missing front matter: file must start with a --- line")
	}
	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := bytes.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if string(bytes.TrimRight(line, " \t")) == "---" {
			front := rest[:offset]
			if end < 0 {
				return front, nil, nil
			}
			return front, rest[offset+end+1:], nil
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return nil, nil, errors.New("unterminated front matter: missing closing --- line")
}
