package geometry

import (
	"github.com/beevik/etree"

	"github.com/OpenTraceLab/boardforge/pkg/svgdom"
)

// Shape is a read-only geometric projection of a drawing-tree element.
// Shapes own no mutable state; the source element is retained only so
// the compositor can copy it into the output document.
type Shape interface {
	// Bounds returns the shape's axis-aligned bounding box. The second
	// result is false for shapes with no computable extent.
	Bounds() (BoundingBox, bool)
	// Element returns the source drawing element.
	Element() *etree.Element
}

// Rect is an axis-aligned rectangle shape.
type Rect struct {
	X, Y, W, H float64
	el         *etree.Element
}

// Circle is a circular shape.
type Circle struct {
	CX, CY, R float64
	el        *etree.Element
}

// Path is a free-form path shape. Its geometry is the flat coordinate
// sequence extracted from the path data, taken positionally in (x, y)
// pairs; command semantics are ignored.
type Path struct {
	coords []float64
	el     *etree.Element
}

// Other is any drawable element the bounds engine does not model
// (lines, polygons, ellipses). It has no computable extent.
type Other struct {
	el *etree.Element
}

// FromElement projects a drawing element onto its Shape variant.
func FromElement(el *etree.Element) Shape {
	switch el.Tag {
	case "rect":
		return Rect{
			X:  svgdom.FloatAttr(el, "x"),
			Y:  svgdom.FloatAttr(el, "y"),
			W:  svgdom.FloatAttr(el, "width"),
			H:  svgdom.FloatAttr(el, "height"),
			el: el,
		}
	case "circle":
		return Circle{
			CX: svgdom.FloatAttr(el, "cx"),
			CY: svgdom.FloatAttr(el, "cy"),
			R:  svgdom.FloatAttr(el, "r"),
			el: el,
		}
	case "path":
		return Path{
			coords: svgdom.Coordinates(el.SelectAttrValue("d", "")),
			el:     el,
		}
	default:
		return Other{el: el}
	}
}

// Bounds returns [x, x+w] × [y, y+h].
func (r Rect) Bounds() (BoundingBox, bool) {
	return BoxAt(r.X, r.Y, r.W, r.H), true
}

// Element returns the source drawing element.
func (r Rect) Element() *etree.Element { return r.el }

// Center returns the rectangle's centroid.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Bounds returns [cx-r, cx+r] × [cy-r, cy+r].
func (c Circle) Bounds() (BoundingBox, bool) {
	return BoxAround(c.CX, c.CY, 2*c.R, 2*c.R), true
}

// Element returns the source drawing element.
func (c Circle) Element() *etree.Element { return c.el }

// Center returns the circle's center.
func (c Circle) Center() Position {
	return Position{X: c.CX, Y: c.CY}
}

// Bounds returns the min/max over all coordinate pairs in the path
// data. An odd leftover coordinate is discarded. Paths with fewer than
// one complete pair have no extent.
func (p Path) Bounds() (BoundingBox, bool) {
	if len(p.coords) < 2 {
		return BoundingBox{}, false
	}
	bbox := NewBoundingBox()
	for i := 0; i+1 < len(p.coords); i += 2 {
		bbox.Expand(Position{X: p.coords[i], Y: p.coords[i+1]})
	}
	return bbox, true
}

// Element returns the source drawing element.
func (p Path) Element() *etree.Element { return p.el }

// Bounds reports no computable extent.
func (o Other) Bounds() (BoundingBox, bool) { return BoundingBox{}, false }

// Element returns the source drawing element.
func (o Other) Element() *etree.Element { return o.el }
