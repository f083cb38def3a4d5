package icons

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
)

// node is a parsed markup node: *element or textNode.
type node interface {
	render(b *strings.Builder, opts renderOptions)
}

type textNode string

// element is a parsed markup element. Once returned from Outline internals it
// is never mutated, so rendering concurrently is safe.
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	children []node
	// origID is the identifier the element carried before sanitizing.
	origID string
}

type renderOptions struct {
	// skipIdentity omits id attributes and use references so the output
	// depends only on shape and presentation.
	skipIdentity bool
	// extra attributes replace or extend those of the outermost element.
	extra []xml.Attr
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// parseMarkup parses raw into an element tree with exactly one root element.
// Namespace prefixes are kept verbatim so serializing reproduces the source
// spelling.
func parseMarkup(raw string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	dec.Strict = true

	var root *element
	var stack []*element
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if dup, ok := duplicateAttr(t.Attr); ok {
				return nil, malformed(fmt.Sprintf("duplicate attribute %s on <%s>", qualifiedName(dup), qualifiedName(t.Name)))
			}
			el := &element{name: t.Name, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, malformed("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, malformed(fmt.Sprintf("unexpected closing tag </%s>", qualifiedName(t.Name)))
			}
			top := stack[len(stack)-1]
			if top.name != t.Name {
				return nil, malformed(fmt.Sprintf("closing tag </%s> does not match <%s>", qualifiedName(t.Name), qualifiedName(top.name)))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, malformed("text outside root element")
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, textNode(string(t)))
		}
	}
	if len(stack) != 0 {
		return nil, malformed(fmt.Sprintf("unclosed element <%s>", qualifiedName(stack[len(stack)-1].name)))
	}
	if root == nil {
		return nil, malformed("no root element")
	}
	if root.name.Space != "" || root.name.Local != "svg" {
		return nil, malformed(fmt.Sprintf("root element must be <svg>, got <%s>", qualifiedName(root.name)))
	}
	return root, nil
}

func malformed(reason string) error {
	return apperrors.Wrap(apperrors.CodeMalformedMarkup, "malformed svg markup", errors.New(reason))
}

func duplicateAttr(attrs []xml.Attr) (xml.Name, bool) {
	seen := make(map[xml.Name]bool, len(attrs))
	for _, attr := range attrs {
		if seen[attr.Name] {
			return attr.Name, true
		}
		seen[attr.Name] = true
	}
	return xml.Name{}, false
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func (t textNode) render(b *strings.Builder, _ renderOptions) {
	textEscaper.WriteString(b, string(t))
}

func (e *element) render(b *strings.Builder, opts renderOptions) {
	name := qualifiedName(e.name)
	b.WriteByte('<')
	b.WriteString(name)
	for _, attr := range e.attrs {
		if opts.skipIdentity && isIdentityAttr(e, attr.Name) {
			continue
		}
		if overridden(opts.extra, attr.Name) {
			continue
		}
		writeAttr(b, attr)
	}
	for _, attr := range opts.extra {
		writeAttr(b, attr)
	}
	if len(e.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	childOpts := renderOptions{skipIdentity: opts.skipIdentity}
	for _, child := range e.children {
		child.render(b, childOpts)
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func (e *element) renderInner() string {
	var b strings.Builder
	for _, child := range e.children {
		child.render(&b, renderOptions{})
	}
	return b.String()
}

func (e *element) String() string {
	var b strings.Builder
	e.render(&b, renderOptions{})
	return b.String()
}

func overridden(extra []xml.Attr, name xml.Name) bool {
	for _, attr := range extra {
		if attr.Name == name {
			return true
		}
	}
	return false
}

func writeAttr(b *strings.Builder, attr xml.Attr) {
	b.WriteByte(' ')
	b.WriteString(qualifiedName(attr.Name))
	b.WriteString(`="`)
	attrEscaper.WriteString(b, attr.Value)
	b.WriteByte('"')
}

func isIdentityAttr(e *element, name xml.Name) bool {
	if name.Space == "" && name.Local == "id" {
		return true
	}
	return isUse(e) && isHref(name)
}

func isUse(e *element) bool {
	return e.name.Space == "" && e.name.Local == "use"
}

func isHref(name xml.Name) bool {
	return name.Local == "href" && (name.Space == "" || name.Space == "xlink")
}

func (e *element) attr(local string) (string, bool) {
	for _, attr := range e.attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// setAttr replaces an unprefixed attribute in place or appends it.
func (e *element) setAttr(local, value string) {
	for i, attr := range e.attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: local}, Value: value})
}
