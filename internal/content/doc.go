// Package content loads the site's collections: blog posts written in
// Markdown with YAML front matter, and the YAML data tables describing the
// profile, work history, education and projects.
//
// Everything is read once into a Collection, which is never mutated after
// Load returns and can be shared by concurrent renderers.
package content
