package icons

import (
	"encoding/xml"
	"strings"
)

const symbolPrefix = "icon-"

// SymbolID returns the sprite symbol ID for an icon name.
func SymbolID(name string) string {
	return symbolPrefix + name
}

// Sprite returns a hidden svg holding one <symbol> per icon. Include it once
// per page and reference icons with <use href="#icon-name">.
func (r *Registry) Sprite() string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" style="display:none" aria-hidden="true">`)
	width := FormatStrokeWidth(r.strokeWidth)
	for _, name := range r.names {
		icon := r.icons[name]
		b.WriteString("<symbol")
		writeAttr(&b, xml.Attr{Name: xml.Name{Local: "id"}, Value: SymbolID(name)})
		if icon.ViewBox != "" {
			writeAttr(&b, xml.Attr{Name: xml.Name{Local: "viewBox"}, Value: icon.ViewBox})
		}
		b.WriteString(` fill="none" stroke="currentColor" stroke-width="`)
		b.WriteString(width)
		b.WriteString(`">`)
		b.WriteString(icon.root.renderInner())
		b.WriteString("</symbol>")
	}
	b.WriteString("</svg>")
	return b.String()
}
