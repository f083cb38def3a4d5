package static

import "embed"

// FS exposes the site's static assets, copied to /static/ on build.
//
//go:embed *.css
var FS embed.FS
