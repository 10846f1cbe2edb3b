// Package classify decides what a raw mask- or outline-layer shape is.
// Exported layer drawings carry no semantic tags, so the compositor
// relies on these geometric heuristics to tell mounting holes, corner
// pads and paste-covered openings apart.
package classify

import (
	"math"

	"github.com/OpenTraceLab/boardforge/pkg/geometry"
)

// Empirically chosen thresholds, kept verbatim for behaviour parity
// with renders produced by earlier releases.
const (
	// MountingHoleMinRadius excludes functional vias, which are
	// smaller than any fastening hole.
	MountingHoleMinRadius = 1.0
	// MountingHoleCornerBand is the fraction of the board extent, from
	// each edge, inside which a hole counts as corner-positioned.
	MountingHoleCornerBand = 0.25
	// PadCornerBand is the tighter band used for corner-pad detection.
	PadCornerBand = 0.2
	// CornerPadMinRadius excludes circles too small to be structural
	// corner pads.
	CornerPadMinRadius = 2.0
	// CoincidenceTolerance shrinks both boxes in the overlap test so
	// edge contact does not count as coincidence.
	CoincidenceTolerance = 0.1
	// ConcentricTolerance is the max center distance for two circles
	// to count as a concentric hole/pad pair.
	ConcentricTolerance = 0.5
)

// IsMountingHole reports whether the shape is a mechanical fastening
// hole: a circle larger than any functional via whose center sits in a
// corner region of the board. The test requires proximity to both a
// horizontal and a vertical board edge; a hole along the middle of one
// edge does not qualify.
func IsMountingHole(s geometry.Shape, board geometry.BoundingBox) bool {
	c, ok := s.(geometry.Circle)
	if !ok {
		return false
	}
	if c.R <= MountingHoleMinRadius {
		return false
	}
	return inCornerBand(c.Center(), board, MountingHoleCornerBand)
}

// IsNearCorner reports whether a shape's centroid lies in a corner
// region of the board. Circles below CornerPadMinRadius are excluded.
// Used for pad classification, with a tighter band than the
// mounting-hole test.
func IsNearCorner(s geometry.Shape, board geometry.BoundingBox) bool {
	var center geometry.Position
	switch v := s.(type) {
	case geometry.Circle:
		if v.R < CornerPadMinRadius {
			return false
		}
		center = v.Center()
	case geometry.Rect:
		center = v.Center()
	case geometry.Path:
		b, ok := v.Bounds()
		if !ok {
			return false
		}
		center = b.Center()
	default:
		return false
	}
	return inCornerBand(center, board, PadCornerBand)
}

func inCornerBand(p geometry.Position, board geometry.BoundingBox, band float64) bool {
	nearLeft := p.X < board.Min.X+board.Width()*band
	nearRight := p.X > board.Max.X-board.Width()*band
	nearTop := p.Y < board.Min.Y+board.Height()*band
	nearBottom := p.Y > board.Max.Y-board.Height()*band
	return (nearLeft || nearRight) && (nearTop || nearBottom)
}

// CoincidesWith reports whether two shapes' footprints coincide: their
// bounding boxes overlap after shrinking each interval by tolerance on
// both ends. A mask opening coinciding with a paste-stencil opening is
// paste-covered rather than exposed copper. The test is symmetric.
func CoincidesWith(a, b geometry.Shape, tolerance float64) bool {
	ab, ok := a.Bounds()
	if !ok {
		return false
	}
	bb, ok := b.Bounds()
	if !ok {
		return false
	}
	return ab.OverlapsShrunk(bb, tolerance)
}

// HasSmallerNeighbor reports whether another circle in the collection
// is concentric with c (center within tolerance) and strictly smaller.
// Plated holes are often drawn as two nested circles; the inner one
// marks the drill.
func HasSmallerNeighbor(c geometry.Circle, all []geometry.Shape, tolerance float64) bool {
	for _, s := range all {
		other, ok := s.(geometry.Circle)
		if !ok || other == c {
			continue
		}
		dist := math.Hypot(c.CX-other.CX, c.CY-other.CY)
		if dist <= tolerance && other.R < c.R {
			return true
		}
	}
	return false
}
