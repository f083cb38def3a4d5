package icons

import "strings"

// Definition describes a bundled icon.
type Definition struct {
	Name        string
	Label       string
	Description string
}

var catalog = []Definition{
	{
		Name:        "arrow-left",
		Label:       "Back",
		Description: "Navigation back to a listing page.",
	},
	{
		Name:        "briefcase",
		Label:       "Work",
		Description: "Work history entries.",
	},
	{
		Name:        "calendar",
		Label:       "Date",
		Description: "Publication dates and employment periods.",
	},
	{
		Name:        "code",
		Label:       "Source",
		Description: "Project source repositories.",
	},
	{
		Name:        "external-link",
		Label:       "External link",
		Description: "Links that leave the site.",
	},
	{
		Name:        "github",
		Label:       "GitHub",
		Description: "GitHub profile link.",
	},
	{
		Name:        "graduation-cap",
		Label:       "Education",
		Description: "Degrees and certifications.",
	},
	{
		Name:        "linkedin",
		Label:       "LinkedIn",
		Description: "LinkedIn profile link.",
	},
	{
		Name:        "mail",
		Label:       "Email",
		Description: "Contact email address.",
	},
	{
		Name:        "map-pin",
		Label:       "Location",
		Description: "Where a job or the author is based.",
	},
	{
		Name:        "rss",
		Label:       "Feed",
		Description: "RSS feed subscription.",
	},
	{
		Name:        "tag",
		Label:       "Tag",
		Description: "Post tags and project technologies.",
	},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// CatalogMarkdown renders the icon catalog as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("Generated by `go run ./cmd/icons catalog`.\n\n")
	builder.WriteString("| Icon | Label | Symbol | Description |\n")
	builder.WriteString("| --- | --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(def.Name)
		builder.WriteString(" | ")
		builder.WriteString(def.Label)
		builder.WriteString(" | `")
		builder.WriteString(SymbolID(def.Name))
		builder.WriteString("` | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
	return builder.String()
}
