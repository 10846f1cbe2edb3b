package geometry

import "github.com/OpenTraceLab/boardforge/pkg/svgdom"

// Fallback bounds returned when a drawing contains nothing bounded, so
// downstream placement math never sees degenerate values. Layer
// drawings guess a board-sized region at the origin; artwork drawings
// an origin-centered thumbnail.
var (
	fallbackLayerBounds   = BoxAt(0, 0, 100, 100)
	fallbackArtworkBounds = BoxAround(0, 0, 10, 10)
)

// TreeBounds computes the bounding box of a whole layer drawing. An
// explicit view-box on the root is authoritative and skips traversal;
// otherwise the result is the union over every drawable descendant,
// falling back to a fixed 100x100 region at the origin when nothing is
// bounded.
func TreeBounds(doc *svgdom.Document) BoundingBox {
	return treeBounds(doc, fallbackLayerBounds)
}

// ArtworkBounds computes the bounding box of a component artwork
// drawing. Same rules as TreeBounds but with the artwork fallback: an
// origin-centered 10x10 region.
func ArtworkBounds(doc *svgdom.Document) BoundingBox {
	return treeBounds(doc, fallbackArtworkBounds)
}

func treeBounds(doc *svgdom.Document, fallback BoundingBox) BoundingBox {
	if vb, ok := doc.ViewBox(); ok {
		return BoxAt(vb.MinX, vb.MinY, vb.Width, vb.Height)
	}

	bbox := NewBoundingBox()
	for _, el := range doc.Drawables() {
		if b, ok := FromElement(el).Bounds(); ok {
			bbox.ExpandBox(b)
		}
	}
	if bbox.IsEmpty() {
		return fallback
	}
	return bbox
}

// Shapes projects every drawable element of the document onto its Shape
// variant, in depth-first emission order.
func Shapes(doc *svgdom.Document) []Shape {
	els := doc.Drawables()
	shapes := make([]Shape, 0, len(els))
	for _, el := range els {
		shapes = append(shapes, FromElement(el))
	}
	return shapes
}
