// Package svgdom provides a thin document model over exported PCB layer
// SVGs. Layer files are trees of shape primitives with no semantic tags,
// so the package only deals in raw elements: parsing, traversal of the
// drawable subset, style-stripped copies, and serialisation.
package svgdom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// drawableTags is the set of SVG element names that carry renderable
// geometry. Everything else (defs, metadata, title, ...) is skipped.
var drawableTags = map[string]bool{
	"path":     true,
	"circle":   true,
	"rect":     true,
	"line":     true,
	"polygon":  true,
	"polyline": true,
	"ellipse":  true,
}

// Document wraps a parsed SVG file.
type Document struct {
	doc *etree.Document
}

// ParseFile reads and parses an SVG file.
func ParseFile(filename string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filename); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", filename)
	}
	return &Document{doc: doc}, nil
}

// Parse reads and parses an SVG document from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse SVG: no root element")
	}
	return &Document{doc: doc}, nil
}

// ParseString parses an SVG document from a string.
func ParseString(input string) (*Document, error) {
	return Parse(strings.NewReader(input))
}

// Root returns the document's root element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Drawables returns every drawable element in the document in
// depth-first emission order.
func (d *Document) Drawables() []*etree.Element {
	return Drawables(d.doc.Root())
}

// Drawables collects the drawable elements under root, root included,
// in depth-first order.
func Drawables(root *etree.Element) []*etree.Element {
	if root == nil {
		return nil
	}
	var out []*etree.Element
	if drawableTags[root.Tag] {
		out = append(out, root)
	}
	for _, child := range root.ChildElements() {
		out = append(out, Drawables(child)...)
	}
	return out
}

// IsDrawable reports whether the element is a renderable shape primitive.
func IsDrawable(el *etree.Element) bool {
	return el != nil && drawableTags[el.Tag]
}

// CleanCopy returns a copy of the element with its original styling
// removed, so the compositor can restyle it for the output document.
// Child elements are carried over unchanged.
func CleanCopy(el *etree.Element) *etree.Element {
	cp := el.Copy()
	for _, attr := range []string{"fill", "stroke", "style", "stroke-width"} {
		cp.RemoveAttr(attr)
	}
	return cp
}

// FloatAttr parses a numeric attribute, returning 0 when the attribute
// is absent or malformed. SVG geometry attributes default to zero.
func FloatAttr(el *etree.Element, name string) float64 {
	v, err := strconv.ParseFloat(el.SelectAttrValue(name, "0"), 64)
	if err != nil {
		return 0
	}
	return v
}

// ViewBox is an SVG view-box declaration.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// ViewBox returns the root element's declared view-box, if it has a
// well-formed one.
func (d *Document) ViewBox() (ViewBox, bool) {
	return ParseViewBox(d.doc.Root().SelectAttrValue("viewBox", ""))
}

// ParseViewBox parses a "minX minY width height" view-box string.
func ParseViewBox(s string) (ViewBox, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return ViewBox{}, false
	}
	var nums [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, false
		}
		nums[i] = v
	}
	return ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}, true
}
