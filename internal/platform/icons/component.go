package icons

import (
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Inline renders the full icon markup with an optional class. Unknown icons
// fail at render time.
func (r *Registry) Inline(name, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		icon, ok := r.icons[name]
		if !ok {
			return unknownIcon(name)
		}
		var b strings.Builder
		icon.root.render(&b, renderOptions{extra: decorativeAttrs(class)})
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Use renders a small svg referencing the icon's sprite symbol.
func (r *Registry) Use(name, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		icon, ok := r.icons[name]
		if !ok {
			return unknownIcon(name)
		}
		var b strings.Builder
		b.WriteString("<svg")
		if icon.ViewBox != "" {
			writeAttr(&b, xml.Attr{Name: xml.Name{Local: "viewBox"}, Value: icon.ViewBox})
		}
		for _, attr := range decorativeAttrs(class) {
			writeAttr(&b, attr)
		}
		b.WriteString(`><use href="#`)
		b.WriteString(templ.EscapeString(SymbolID(name)))
		b.WriteString(`"/></svg>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func decorativeAttrs(class string) []xml.Attr {
	attrs := make([]xml.Attr, 0, 2)
	if class = strings.TrimSpace(class); class != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "class"}, Value: class})
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: "aria-hidden"}, Value: "true"})
}
