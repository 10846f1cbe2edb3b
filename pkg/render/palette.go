// Package render composites exported board layer drawings into one
// finished SVG per board side, and lays both sides into a combined
// view. It consumes raw layer files through the geometry and classify
// packages and component artwork through the placement resolver.
package render

import "fmt"

// Palette is the four-color scheme of a render: canvas background,
// board substrate, silkscreen print and exposed pad copper.
type Palette struct {
	Background string
	Board      string
	Silk       string
	Pad        string
}

// DefaultPalette is the stock dark-background green-board scheme.
func DefaultPalette() Palette {
	return Palette{
		Background: "#1a1a1a",
		Board:      "#2d5a3d",
		Silk:       "#ffffff",
		Pad:        "#ffd700",
	}
}

// PaletteFromColors builds a palette from the four CLI color values in
// BG, PCB, SILK, PAD order.
func PaletteFromColors(colors []string) (Palette, error) {
	if len(colors) != 4 {
		return Palette{}, fmt.Errorf("expected 4 colors (BG PCB SILK PAD), got %d", len(colors))
	}
	return Palette{
		Background: colors[0],
		Board:      colors[1],
		Silk:       colors[2],
		Pad:        colors[3],
	}, nil
}
