package render

import (
	"encoding/base64"
	"fmt"
	"math"
	"os"

	"github.com/beevik/etree"

	"github.com/OpenTraceLab/boardforge/pkg/svgdom"
)

// Fixed geometry of the combined dual-side view.
const (
	combineGap          = 10.0 // horizontal gap between the two sides
	combinedOutWidth    = "300mm"
	combinedOutHeight   = "150mm"
)

// CombineSides lays the two rendered composites side by side on a new
// canvas sized to their combined width and the taller of the two
// heights. The originals are embedded as opaque image references; the
// combined view never re-parses their internals. A missing composite
// or one with no declared view window is an error for the combined
// view only.
func CombineSides(topFile, bottomFile, outFile, background string) error {
	topVB, err := declaredViewBox(topFile)
	if err != nil {
		return err
	}
	bottomVB, err := declaredViewBox(bottomFile)
	if err != nil {
		return err
	}

	width := topVB.Width + combineGap + bottomVB.Width
	height := math.Max(topVB.Height, bottomVB.Height)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("width", combinedOutWidth)
	svg.CreateAttr("height", combinedOutHeight)
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(width), num(height)))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("x", "0")
	bg.CreateAttr("y", "0")
	bg.CreateAttr("width", num(width))
	bg.CreateAttr("height", num(height))
	bg.CreateAttr("fill", background)

	if err := embedImage(svg, topFile, 0, topVB.Width, topVB.Height); err != nil {
		return err
	}
	if err := embedImage(svg, bottomFile, topVB.Width+combineGap, bottomVB.Width, bottomVB.Height); err != nil {
		return err
	}

	doc.Indent(2)
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write combined view: %w", err)
	}
	return nil
}

func declaredViewBox(filename string) (svgdom.ViewBox, error) {
	doc, err := svgdom.ParseFile(filename)
	if err != nil {
		return svgdom.ViewBox{}, err
	}
	vb, ok := doc.ViewBox()
	if !ok {
		return svgdom.ViewBox{}, fmt.Errorf("%s declares no view dimensions", filename)
	}
	return vb, nil
}

func embedImage(parent *etree.Element, filename string, x, width, height float64) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	img := parent.CreateElement("image")
	img.CreateAttr("x", num(x))
	img.CreateAttr("y", "0")
	img.CreateAttr("width", num(width))
	img.CreateAttr("height", num(height))
	img.CreateAttr("href", "data:image/svg+xml;base64,"+base64.StdEncoding.EncodeToString(data))
	return nil
}
