// Package branding holds the default site identity.
package branding

// SiteName is used for page titles and the feed when the profile does not
// set one.
const SiteName = "Portfolio"

// TitleSeparator joins a page title and the site name.
const TitleSeparator = " | "
