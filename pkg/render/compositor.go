package render

import (
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/boardforge/pkg/classify"
	"github.com/OpenTraceLab/boardforge/pkg/geometry"
	"github.com/OpenTraceLab/boardforge/pkg/placement"
	"github.com/OpenTraceLab/boardforge/pkg/svgdom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Fixed output geometry. The physical page size is constant; the view
// window adapts to the board.
const (
	outputWidth  = "150mm"
	outputHeight = "250mm"
	viewMargin   = 2.0 // margin around the board in the view window
	basePadding  = 5.0 // background rectangle padding around the board
)

// Board base styling.
const (
	defaultCornerRadius = 3.0  // when the outline has no arc to read from
	outlineStrokeWidth  = 0.2  // final outline overlay
	logoStrokeWidth     = 0.15 // silkscreen line-art outlines
	logoMinRadius       = 2.5  // silk circles above this render as line art
)

// Pad-center highlight ratios, chosen empirically per pad kind and
// size bucket. Kept verbatim for behaviour parity.
const (
	mountingHoleHighlight = 0.75
	smallCircleHighlight  = 0.55
	cornerRectHighlight   = 0.7
	smallRectHighlight    = 0.8
	pathHighlight         = 0.33
)

// Highlight size buckets.
const (
	circleHighlightMinR   = 0.2
	circleHighlightMaxR   = 1.2
	rectHighlightMinSide  = 0.4
	rectHighlightMaxSide  = 1.5
	pathHighlightMinSide  = 0.4
	pathHighlightMaxSide  = 1.8
	pasteReferenceOpacity = "0.0"
	pasteReferenceColor   = "#C0C0C0"
)

var arcRadiusRe = regexp.MustCompile(`A\s*([0-9]+\.?[0-9]*)`)

// Compositor renders one board side into a self-contained SVG
// document.
type Compositor struct {
	palette  Palette
	resolver *placement.Resolver
}

// NewCompositor creates a compositor with the given palette and
// component artwork resolver.
func NewCompositor(palette Palette, resolver *placement.Resolver) *Compositor {
	return &Compositor{palette: palette, resolver: resolver}
}

// CompositeSide runs the full per-side pipeline: board reference
// frame, landscape normalization, board base with punched mounting
// holes, silkscreen, paste reference, filtered mask, component
// artwork, outline overlay, serialisation. A missing silkscreen, mask
// or paste file is tolerated; a missing or unparseable outline is
// fatal.
func (c *Compositor) CompositeSide(layers LayerSet, side string, components []placement.Component, outFile string) error {
	outline, err := svgdom.ParseFile(layers.Outline)
	if err != nil {
		return fmt.Errorf("failed to parse board outline: %w", err)
	}
	board := geometry.TreeBounds(outline)

	center := board.Center()
	landscape := board.Width() > board.Height()

	var viewX, viewY, viewW, viewH float64
	if landscape {
		// The output canvas is built in the rotated portrait frame:
		// the view window takes the swapped extents around the board
		// center, and all content is rotated -90 about that center.
		rotW, rotH := board.Height(), board.Width()
		viewX = center.X - rotW/2 - viewMargin
		viewY = center.Y - rotH/2 - viewMargin
		viewW = rotW + 2*viewMargin
		viewH = rotH + 2*viewMargin
	} else {
		viewX = board.Min.X - viewMargin
		viewY = board.Min.Y - viewMargin
		viewW = board.Width() + 2*viewMargin
		viewH = board.Height() + 2*viewMargin
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", outputWidth)
	svg.CreateAttr("height", outputHeight)
	svg.CreateAttr("viewBox", fmt.Sprintf("%s %s %s %s", num(viewX), num(viewY), num(viewW), num(viewH)))

	main := svg
	if landscape {
		main = svg.CreateElement("g")
		main.CreateAttr("transform", fmt.Sprintf("rotate(-90, %s, %s)", num(center.X), num(center.Y)))
	}

	outlinePath, holes := c.drawBoardBase(main, outline, board)

	content := main.CreateElement("g")
	if side == placement.SideBottom {
		// Mirror the per-side content left-right while keeping the
		// outline orientation, as if viewing the board from the back.
		content.CreateAttr("transform", fmt.Sprintf(
			"rotate(180, %s, %s) translate(%s, 0) scale(-1, 1)",
			num(center.X), num(center.Y), num(2*center.X)))
	}

	c.drawSilkscreen(content, layers.SilkFor(side), board)
	c.drawPasteReference(content, layers.PasteFor(side))
	c.drawFilteredMask(content, layers.MaskFor(side), layers.PasteFor(side), board)
	c.placeComponents(main, components, side, board)
	c.drawOutlineOverlay(main, outlinePath, holes)

	doc.Indent(2)
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}
	return nil
}

// drawBoardBase draws the background rectangle and the rounded board
// outline, and punches the mounting holes out of the board fill by
// drawing them in the background color on top. Returns the outline
// path data and the hole elements for the final overlay.
func (c *Compositor) drawBoardBase(parent *etree.Element, outline *svgdom.Document, board geometry.BoundingBox) (string, []*etree.Element) {
	bg := parent.CreateElement("rect")
	bg.CreateAttr("x", num(board.Min.X-basePadding))
	bg.CreateAttr("y", num(board.Min.Y-basePadding))
	bg.CreateAttr("width", num(board.Width()+2*basePadding))
	bg.CreateAttr("height", num(board.Height()+2*basePadding))
	bg.CreateAttr("fill", c.palette.Background)

	pathData := roundedRectPath(board, cornerRadius(outline))
	boardFill := parent.CreateElement("path")
	boardFill.CreateAttr("d", pathData)
	boardFill.CreateAttr("fill", c.palette.Board)

	var holes []*etree.Element
	for _, el := range outline.Drawables() {
		if el.Tag != "circle" {
			continue
		}
		if classify.IsMountingHole(geometry.FromElement(el), board) {
			holes = append(holes, el)
		}
	}
	if len(holes) > 0 {
		punch := parent.CreateElement("g")
		punch.CreateAttr("fill", c.palette.Background)
		punch.CreateAttr("stroke", "none")
		for _, hole := range holes {
			punch.AddChild(hole.Copy())
		}
	}
	return pathData, holes
}

// cornerRadius reads the board corner radius from the first elliptical
// arc command in the outline path data, falling back to the default.
func cornerRadius(outline *svgdom.Document) float64 {
	for _, el := range outline.Drawables() {
		if el.Tag != "path" {
			continue
		}
		d := el.SelectAttrValue("d", "")
		m := arcRadiusRe.FindStringSubmatch(d)
		if m == nil {
			continue
		}
		if r, err := strconv.ParseFloat(m[1], 64); err == nil {
			return r
		}
	}
	return defaultCornerRadius
}

// roundedRectPath builds the rounded-rectangle board outline path.
func roundedRectPath(board geometry.BoundingBox, r float64) string {
	x, y := board.Min.X, board.Min.Y
	w, h := board.Width(), board.Height()
	return fmt.Sprintf(
		"M %s,%s L %s,%s A %s,%s 0 0 1 %s,%s L %s,%s A %s,%s 0 0 1 %s,%s L %s,%s A %s,%s 0 0 1 %s,%s L %s,%s A %s,%s 0 0 1 %s,%s Z",
		num(x+r), num(y),
		num(x+w-r), num(y), num(r), num(r), num(x+w), num(y+r),
		num(x+w), num(y+h-r), num(r), num(r), num(x+w-r), num(y+h),
		num(x+r), num(y+h), num(r), num(r), num(x), num(y+h-r),
		num(x), num(y+r), num(r), num(r), num(x+r), num(y))
}

// drawSilkscreen copies the silkscreen layer stripped of its original
// styling. Large circles that are not mounting holes are treated as
// reference or logo line art and rendered unfilled; everything else is
// filled solid in the silkscreen color. A missing or unparseable layer
// is simply omitted.
func (c *Compositor) drawSilkscreen(parent *etree.Element, silkFile string, board geometry.BoundingBox) {
	if silkFile == "" {
		return
	}
	silk, err := svgdom.ParseFile(silkFile)
	if err != nil {
		fmt.Printf("[WARN] Skipping silkscreen layer: %v\n", err)
		return
	}

	group := parent.CreateElement("g")
	group.CreateAttr("fill", c.palette.Silk)
	group.CreateAttr("stroke", "none")

	for _, el := range silk.Drawables() {
		cp := svgdom.CleanCopy(el)
		shape := geometry.FromElement(el)
		if circle, ok := shape.(geometry.Circle); ok &&
			circle.R > logoMinRadius && !classify.IsMountingHole(shape, board) {
			cp.CreateAttr("fill", "none")
			cp.CreateAttr("stroke", c.palette.Silk)
			cp.CreateAttr("stroke-width", num(logoStrokeWidth))
		} else {
			cp.CreateAttr("fill", c.palette.Silk)
			cp.CreateAttr("stroke", "none")
		}
		group.AddChild(cp)
	}
}

// drawPasteReference copies the paste layer at zero opacity. It is
// retained structurally so the mask filtering stays inspectable in the
// output, never for visual output.
func (c *Compositor) drawPasteReference(parent *etree.Element, pasteFile string) {
	if pasteFile == "" {
		return
	}
	paste, err := svgdom.ParseFile(pasteFile)
	if err != nil {
		return
	}
	group := parent.CreateElement("g")
	group.CreateAttr("fill", pasteReferenceColor)
	group.CreateAttr("fill-opacity", pasteReferenceOpacity)
	for _, el := range paste.Drawables() {
		group.AddChild(svgdom.CleanCopy(el))
	}
}

// drawFilteredMask renders the solder mask openings that are not
// covered by paste. A mask shape coinciding with any paste-stencil
// shape is paste-covered and skipped entirely; survivors are exposed
// pads, filled in the pad color with a smaller background-colored
// center highlight whose radius depends on the pad kind and size.
func (c *Compositor) drawFilteredMask(parent *etree.Element, maskFile, pasteFile string, board geometry.BoundingBox) {
	if maskFile == "" {
		return
	}
	mask, err := svgdom.ParseFile(maskFile)
	if err != nil {
		fmt.Printf("[WARN] Skipping mask layer: %v\n", err)
		return
	}
	maskShapes := geometry.Shapes(mask)

	var pasteShapes []geometry.Shape
	if pasteFile != "" {
		if paste, err := svgdom.ParseFile(pasteFile); err == nil {
			pasteShapes = geometry.Shapes(paste)
		}
	}
	if pasteShapes == nil {
		fmt.Println("[WARN] Paste layer not available; mask filtering will be inaccurate")
	}

	pads := parent.CreateElement("g")
	pads.CreateAttr("fill", c.palette.Pad)
	pads.CreateAttr("stroke", "none")
	centers := parent.CreateElement("g")
	centers.CreateAttr("fill", c.palette.Background)
	centers.CreateAttr("stroke", "none")

	for _, shape := range maskShapes {
		if _, ok := shape.Bounds(); !ok {
			continue
		}

		coincident := false
		for _, paste := range pasteShapes {
			if classify.CoincidesWith(shape, paste, classify.CoincidenceTolerance) {
				coincident = true
				break
			}
		}
		if coincident {
			continue
		}

		pads.AddChild(svgdom.CleanCopy(shape.Element()))
		c.drawPadCenter(centers, shape, maskShapes, board)
	}
}

// drawPadCenter punches the lighter pad-center highlight for an
// exposed pad, with the radius chosen by shape kind and size bucket.
func (c *Compositor) drawPadCenter(centers *etree.Element, shape geometry.Shape, maskShapes []geometry.Shape, board geometry.BoundingBox) {
	switch v := shape.(type) {
	case geometry.Circle:
		if classify.IsMountingHole(v, board) {
			addCircle(centers, v.CX, v.CY, v.R*mountingHoleHighlight)
			return
		}
		if v.R > circleHighlightMinR && v.R < circleHighlightMaxR {
			// A nested smaller circle in the same layer already reads
			// as the drill; don't punch a second center over it.
			if !classify.HasSmallerNeighbor(v, maskShapes, classify.ConcentricTolerance) {
				addCircle(centers, v.CX, v.CY, v.R*smallCircleHighlight)
			}
		}
	case geometry.Rect:
		side := math.Min(v.W, v.H)
		center := v.Center()
		if classify.IsNearCorner(v, board) {
			addCircle(centers, center.X, center.Y, side*cornerRectHighlight)
		} else if side > rectHighlightMinSide && side < rectHighlightMaxSide {
			addCircle(centers, center.X, center.Y, side*smallRectHighlight)
		}
	case geometry.Path:
		bounds, ok := v.Bounds()
		if !ok {
			return
		}
		side := math.Min(bounds.Width(), bounds.Height())
		if classify.IsNearCorner(v, board) ||
			(side > pathHighlightMinSide && side < pathHighlightMaxSide) {
			center := bounds.Center()
			addCircle(centers, center.X, center.Y, side*pathHighlight)
		}
	}
}

// placeComponents overlays the resolved artwork for every component on
// this side. Components are deduplicated by reference (first
// occurrence wins) and converted from the position-table coordinate
// system, whose Y axis points up, to the render frame, whose Y axis
// points down. Missing artwork is reported per component and never
// aborts the render.
func (c *Compositor) placeComponents(parent *etree.Element, components []placement.Component, side string, board geometry.BoundingBox) {
	group := parent.CreateElement("g")
	group.CreateAttr("id", side+"_components")

	placed := make(map[string]bool)
	missing := 0
	for _, comp := range components {
		if comp.Side != side || placed[comp.Reference] {
			continue
		}
		placed[comp.Reference] = true

		renderX := board.Min.X + comp.X
		renderY := board.Min.Y + (board.Height() - comp.Y)

		_, assetPath, ok := c.resolver.Resolve(comp)
		if !ok {
			fmt.Printf("[WARN] No artwork for %s (%s, %s)\n", comp.Reference, comp.Value, comp.Footprint)
			missing++
			continue
		}

		artwork, err := svgdom.ParseFile(assetPath)
		if err != nil {
			fmt.Printf("[WARN] Failed to parse artwork for %s: %v\n", comp.Reference, err)
			missing++
			continue
		}
		data, err := os.ReadFile(assetPath)
		if err != nil {
			fmt.Printf("[WARN] Failed to read artwork for %s: %v\n", comp.Reference, err)
			missing++
			continue
		}

		bounds := geometry.ArtworkBounds(artwork)
		config := c.resolver.Config()
		rotation := config.RotationFor(comp)
		scale := config.ScaleFor(comp)
		scaledW := bounds.Width() * scale
		scaledH := bounds.Height() * scale

		img := group.CreateElement("image")
		img.CreateAttr("id", "comp_"+comp.Reference)
		img.CreateAttr("href", "data:image/svg+xml;base64,"+base64.StdEncoding.EncodeToString(data))
		img.CreateAttr("width", num(scaledW))
		img.CreateAttr("height", num(scaledH))
		// Rotation is negated to compensate for the render frame's
		// flipped Y axis; the final translate centers the artwork on
		// the position point.
		img.CreateAttr("transform", fmt.Sprintf(
			"translate(%s, %s) rotate(%s) translate(%s, %s)",
			num(renderX), num(renderY), num(-rotation),
			num(-scaledW/2), num(-scaledH/2)))
	}
	if missing > 0 {
		fmt.Printf("[WARN] %d %s-side components rendered without artwork\n", missing, side)
	}
}

// drawOutlineOverlay re-draws the board outline and mounting-hole
// rims, unfilled, above every layer fill so the board edge stays
// crisp.
func (c *Compositor) drawOutlineOverlay(parent *etree.Element, outlinePath string, holes []*etree.Element) {
	group := parent.CreateElement("g")
	group.CreateAttr("fill", "none")
	group.CreateAttr("stroke", c.palette.Board)
	group.CreateAttr("stroke-width", num(outlineStrokeWidth))

	path := group.CreateElement("path")
	path.CreateAttr("d", outlinePath)

	for _, hole := range holes {
		rim := hole.Copy()
		rim.CreateAttr("fill", "none")
		rim.CreateAttr("stroke", c.palette.Board)
		rim.CreateAttr("stroke-width", num(outlineStrokeWidth))
		group.AddChild(rim)
	}
}

func addCircle(parent *etree.Element, cx, cy, r float64) {
	circle := parent.CreateElement("circle")
	circle.CreateAttr("cx", num(cx))
	circle.CreateAttr("cy", num(cy))
	circle.CreateAttr("r", num(r))
}

// num formats a coordinate the way the drawings do: shortest exact
// decimal form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
