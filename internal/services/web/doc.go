// Package web serves a built site for local previews.
//
// The server reads files straight from the output directory on every
// request, so a rebuild that swaps the directory is picked up without a
// restart. In watch mode it also rebuilds the site whenever the content
// changes.
package web
