// Package icons turns bundled svg assets into outline icons for inlining.
//
// Every asset is normalized by Outline once, when the registry is built, and
// the resulting markup never changes afterwards. Pages either inline an icon
// directly or reference a symbol in the shared sprite, so icon colors follow
// the surrounding text and ids never collide within a page.
package icons
