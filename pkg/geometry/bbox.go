// Package geometry computes axis-aligned bounds for the vector shapes
// found in exported board layer drawings. All values are in drawing
// units (mm for KiCad SVG exports).
package geometry

// Position is a 2D coordinate in the drawing coordinate system.
type Position struct {
	X float64
	Y float64
}

// BoundingBox is a rectangular boundary.
type BoundingBox struct {
	Min Position // minimum (top-left) corner
	Max Position // maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box that any Expand will
// replace.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// BoxAt builds a bounding box from a minimum corner and a size.
func BoxAt(x, y, width, height float64) BoundingBox {
	return BoundingBox{
		Min: Position{X: x, Y: y},
		Max: Position{X: x + width, Y: y + height},
	}
}

// BoxAround builds a bounding box from a center point and a size.
func BoxAround(cx, cy, width, height float64) BoundingBox {
	return BoxAt(cx-width/2, cy-height/2, width, height)
}

// IsEmpty reports whether the box has never been expanded.
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand grows the box to include a position.
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// ExpandBox grows the box to include another box.
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Width returns the box width.
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the box height.
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the box center point.
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// OverlapsShrunk reports whether the two boxes still overlap after each
// box is shrunk by tolerance on every side. Used for coincidence tests
// where mere edge contact must not count.
func (bb BoundingBox) OverlapsShrunk(other BoundingBox, tolerance float64) bool {
	return bb.Min.X < other.Max.X-tolerance &&
		bb.Max.X > other.Min.X+tolerance &&
		bb.Min.Y < other.Max.Y-tolerance &&
		bb.Max.Y > other.Min.Y+tolerance
}
