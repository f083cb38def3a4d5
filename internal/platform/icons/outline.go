package icons

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/portfolio/internal/platform/errors"
)

var (
	// ErrMalformedMarkup matches errors for input that is not well-formed svg.
	ErrMalformedMarkup = apperrors.New(apperrors.CodeMalformedMarkup, "malformed svg markup")
	// ErrInvalidParameter matches errors for a non-positive or non-numeric
	// stroke width.
	ErrInvalidParameter = apperrors.New(apperrors.CodeInvalidParameter, "invalid stroke width")
)

// droppedElements hold paint servers, clipping, scripting and editor
// metadata. Their content is only reachable through identifiers or does not
// belong in an outline icon.
var droppedElements = map[string]bool{
	"clipPath":       true,
	"filter":         true,
	"foreignObject":  true,
	"image":          true,
	"linearGradient": true,
	"marker":         true,
	"mask":           true,
	"metadata":       true,
	"pattern":        true,
	"radialGradient": true,
	"script":         true,
	"style":          true,
}

// strippedProperties are fill and color presentation properties, removed
// both as attributes and from style declarations.
var strippedProperties = map[string]bool{
	"color":        true,
	"fill":         true,
	"fill-opacity": true,
	"fill-rule":    true,
	"stop-color":   true,
	"stop-opacity": true,
	"stroke":       true,
}

// referenceProperties point at other elements by identifier.
var referenceProperties = map[string]bool{
	"clip-path":    true,
	"filter":       true,
	"marker-end":   true,
	"marker-mid":   true,
	"marker-start": true,
	"mask":         true,
}

const strokeWidthProperty = "stroke-width"

// Outline rewrites raw svg markup into a stroke-only outline icon.
//
// Fill and color presentation is removed from every element and the root is
// set to fill="none" stroke="currentColor" so the icon takes the color of the
// surrounding text. Every stroke width, as attribute or style property, is
// replaced by strokeWidth. Identifiers and url() references are stripped; ids
// targeted by <use> survive with a prefix derived from the icon's shape so
// two different icons never share an id. Geometry is left untouched.
//
// Outline is pure and safe for concurrent use. Applying it to its own output
// with the same stroke width returns the same bytes.
func Outline(rawMarkup string, strokeWidth float64) (string, error) {
	root, err := outlineTree(rawMarkup, strokeWidth)
	if err != nil {
		return "", err
	}
	return root.String(), nil
}

// ParseStrokeWidth parses a stroke width supplied as text, for example from a
// flag or a template attribute.
func ParseStrokeWidth(value string) (float64, error) {
	width, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperrors.WrapWithMetadata(apperrors.CodeInvalidParameter, "invalid stroke width", map[string]string{"value": value}, err)
	}
	if err := validateStrokeWidth(width); err != nil {
		return 0, err
	}
	return width, nil
}

// FormatStrokeWidth renders a stroke width the way Outline writes it.
func FormatStrokeWidth(strokeWidth float64) string {
	return strconv.FormatFloat(strokeWidth, 'f', -1, 64)
}

func validateStrokeWidth(strokeWidth float64) error {
	if math.IsNaN(strokeWidth) || math.IsInf(strokeWidth, 0) || strokeWidth <= 0 {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidParameter,
			fmt.Sprintf("invalid stroke width %v: must be a positive number", strokeWidth),
			map[string]string{"value": FormatStrokeWidth(strokeWidth)},
		)
	}
	return nil
}

func outlineTree(rawMarkup string, strokeWidth float64) (*element, error) {
	if err := validateStrokeWidth(strokeWidth); err != nil {
		return nil, err
	}
	root, err := parseMarkup(rawMarkup)
	if err != nil {
		return nil, err
	}

	width := FormatStrokeWidth(strokeWidth)
	available := make(map[string]*element)
	sanitizeElement(root, true, width, available)

	root.setAttr("fill", "none")
	root.setAttr("stroke", "currentColor")
	root.setAttr(strokeWidthProperty, width)

	scopeReferences(root, available)
	return root, nil
}

// sanitizeElement rewrites e in place and recurses into every child element.
// Identifiers of surviving elements are collected into available.
func sanitizeElement(e *element, isRoot bool, width string, available map[string]*element) {
	attrs := e.attrs[:0:0]
	hasStyleWidth := false
	for _, attr := range e.attrs {
		name := attr.Name
		switch {
		case name.Space == "xmlns":
			if name.Local == "xlink" {
				attrs = append(attrs, attr)
			}
		case name.Space == "xlink":
			if name.Local == "href" {
				attrs = append(attrs, attr)
			}
		case name.Space == "xml":
			attrs = append(attrs, attr)
		case name.Space != "":
			// Editor namespaces (inkscape:, sodipodi:, ...).
		case name.Local == "id":
			if attr.Value != "" && !isRoot {
				e.origID = attr.Value
				if _, dup := available[attr.Value]; !dup {
					available[attr.Value] = e
				}
			}
		case name.Local == "style":
			style, hadWidth := sanitizeStyle(attr.Value)
			hasStyleWidth = hasStyleWidth || hadWidth
			if style != "" {
				attrs = append(attrs, xml.Attr{Name: name, Value: style})
			}
		case name.Local == strokeWidthProperty:
			// The root gets its width appended with fill and stroke so
			// its attribute order is stable across passes.
			if !isRoot {
				attrs = append(attrs, xml.Attr{Name: name, Value: width})
			}
		case strippedProperties[name.Local], referenceProperties[name.Local]:
		case strings.HasPrefix(strings.ToLower(name.Local), "on"):
		case strings.Contains(strings.ToLower(attr.Value), "url("):
		default:
			attrs = append(attrs, attr)
		}
	}
	e.attrs = attrs
	if hasStyleWidth && !isRoot {
		e.setAttr(strokeWidthProperty, width)
	}

	children := e.children[:0:0]
	for _, child := range e.children {
		el, ok := child.(*element)
		if !ok {
			children = append(children, child)
			continue
		}
		if dropElement(el) {
			continue
		}
		sanitizeElement(el, false, width, available)
		if el.name.Space == "" && el.name.Local == "defs" && !hasElementChild(el) {
			forget(el, available)
			continue
		}
		children = append(children, el)
	}
	e.children = children
}

func dropElement(e *element) bool {
	if e.name.Space != "" {
		return true
	}
	return droppedElements[e.name.Local]
}

func hasElementChild(e *element) bool {
	for _, child := range e.children {
		if _, ok := child.(*element); ok {
			return true
		}
	}
	return false
}

// sanitizeStyle drops fill, color, stroke-width and reference declarations
// from an inline style. The stroke width moves to the presentation
// attribute, which is the single place Outline writes it.
func sanitizeStyle(style string) (string, bool) {
	var kept []string
	hadWidth := false
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		switch {
		case prop == strokeWidthProperty:
			hadWidth = true
		case strippedProperties[prop], referenceProperties[prop]:
		case strings.Contains(strings.ToLower(value), "url("):
		default:
			kept = append(kept, prop+":"+value)
		}
	}
	return strings.Join(kept, ";"), hadWidth
}

// scopeReferences keeps identifiers targeted by <use> elements, rewriting
// them with a prefix derived from the sanitized shape. Uses whose target did
// not survive sanitizing are removed first so the prefix only depends on what
// is rendered.
func scopeReferences(root *element, available map[string]*element) {
	for pruneUses(root, available) {
	}

	var shape strings.Builder
	root.render(&shape, renderOptions{skipIdentity: true})
	// Which element each <use> draws is part of the shape, so icons with the
	// same geometry but different references get different prefixes.
	order := make(map[*element]int)
	indexElements(root, order)
	walkUses(root, func(use *element) {
		for _, target := range useTargets(use, available) {
			fmt.Fprintf(&shape, "\n%d>%d", order[use], order[target])
		}
	})
	sum := sha256.Sum256([]byte(shape.String()))
	prefix := "i" + hex.EncodeToString(sum[:4]) + "-"

	targets := make(map[*element]bool)
	rewriteUses(root, available, prefix, targets)
	for target := range targets {
		scoped := prefix + strings.TrimPrefix(target.origID, prefix)
		target.attrs = append([]xml.Attr{{Name: xml.Name{Local: "id"}, Value: scoped}}, target.attrs...)
	}
}

// pruneUses removes one round of unresolvable <use> elements and reports
// whether anything was removed.
func pruneUses(e *element, available map[string]*element) bool {
	removed := false
	children := e.children[:0:0]
	for _, child := range e.children {
		el, ok := child.(*element)
		if !ok {
			children = append(children, child)
			continue
		}
		if isUse(el) && (!resolvable(el, available) || drawsItself(el, available)) {
			forget(el, available)
			removed = true
			continue
		}
		if pruneUses(el, available) {
			removed = true
		}
		children = append(children, el)
	}
	e.children = children
	return removed
}

func resolvable(use *element, available map[string]*element) bool {
	found := false
	for _, attr := range use.attrs {
		if !isHref(attr.Name) {
			continue
		}
		ref, ok := strings.CutPrefix(strings.TrimSpace(attr.Value), "#")
		if !ok {
			return false
		}
		target, ok := available[ref]
		if !ok || target == use {
			return false
		}
		found = true
	}
	return found
}

// drawsItself reports whether rendering the target of use eventually reaches
// use again, directly or through other <use> elements.
func drawsItself(use *element, available map[string]*element) bool {
	visited := make(map[*element]bool)
	var reaches func(e *element) bool
	reaches = func(e *element) bool {
		if e == use {
			return true
		}
		if visited[e] {
			return false
		}
		visited[e] = true
		if isUse(e) {
			for _, target := range useTargets(e, available) {
				if reaches(target) {
					return true
				}
			}
		}
		for _, child := range e.children {
			if el, ok := child.(*element); ok && reaches(el) {
				return true
			}
		}
		return false
	}
	for _, target := range useTargets(use, available) {
		if reaches(target) {
			return true
		}
	}
	return false
}

// useTargets returns the elements referenced by the href attributes of use
// that resolve in available.
func useTargets(use *element, available map[string]*element) []*element {
	var targets []*element
	for _, attr := range use.attrs {
		if !isHref(attr.Name) {
			continue
		}
		ref, ok := strings.CutPrefix(strings.TrimSpace(attr.Value), "#")
		if !ok {
			continue
		}
		if target, ok := available[ref]; ok {
			targets = append(targets, target)
		}
	}
	return targets
}

// indexElements numbers e and its descendants in document order.
func indexElements(e *element, order map[*element]int) {
	order[e] = len(order)
	for _, child := range e.children {
		if el, ok := child.(*element); ok {
			indexElements(el, order)
		}
	}
}

func walkUses(e *element, visit func(use *element)) {
	for _, child := range e.children {
		el, ok := child.(*element)
		if !ok {
			continue
		}
		if isUse(el) {
			visit(el)
		}
		walkUses(el, visit)
	}
}

func rewriteUses(e *element, available map[string]*element, prefix string, targets map[*element]bool) {
	for _, child := range e.children {
		el, ok := child.(*element)
		if !ok {
			continue
		}
		if isUse(el) {
			for i, attr := range el.attrs {
				if !isHref(attr.Name) {
					continue
				}
				target := available[strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")]
				targets[target] = true
				el.attrs[i].Value = "#" + prefix + strings.TrimPrefix(target.origID, prefix)
			}
		}
		rewriteUses(el, available, prefix, targets)
	}
}

// forget removes the identifiers of e and its descendants from available.
func forget(e *element, available map[string]*element) {
	if e.origID != "" && available[e.origID] == e {
		delete(available, e.origID)
	}
	for _, child := range e.children {
		if el, ok := child.(*element); ok {
			forget(el, available)
		}
	}
}
