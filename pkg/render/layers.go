package render

import (
	"fmt"
	"path/filepath"

	"github.com/OpenTraceLab/boardforge/pkg/placement"
)

// LayerSet holds the discovered per-layer input files for one board.
// An empty path means that layer was not exported; only the outline
// and the position table are required.
type LayerSet struct {
	Outline    string // board edge (Edge_Cuts)
	FrontMask  string
	BackMask   string
	FrontSilk  string
	BackSilk   string
	FrontPaste string
	BackPaste  string
	Positions  string // component position table (CSV)
}

// layerPatterns maps the display label of each expected input to its
// KiCad export filename pattern.
var layerPatterns = []struct {
	label   string
	pattern string
	assign  func(*LayerSet, string)
}{
	{"edge", "*-Edge_Cuts.svg", func(ls *LayerSet, p string) { ls.Outline = p }},
	{"f_mask", "*-F_Mask.svg", func(ls *LayerSet, p string) { ls.FrontMask = p }},
	{"b_mask", "*-B_Mask.svg", func(ls *LayerSet, p string) { ls.BackMask = p }},
	{"f_silk", "*-F_Silkscreen.svg", func(ls *LayerSet, p string) { ls.FrontSilk = p }},
	{"b_silk", "*-B_Silkscreen.svg", func(ls *LayerSet, p string) { ls.BackSilk = p }},
	{"f_paste", "*-F_Paste.svg", func(ls *LayerSet, p string) { ls.FrontPaste = p }},
	{"b_paste", "*-B_Paste.svg", func(ls *LayerSet, p string) { ls.BackPaste = p }},
	{"pos", "*-pos.csv", func(ls *LayerSet, p string) { ls.Positions = p }},
}

// FindLayerFiles discovers the layer files in a folder by filename
// pattern, reporting each label as found or missing.
func FindLayerFiles(dir string) (LayerSet, error) {
	var ls LayerSet
	fmt.Println("Searching for layer files...")
	for _, lp := range layerPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, lp.pattern))
		if err != nil {
			return LayerSet{}, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		if len(matches) > 0 {
			lp.assign(&ls, matches[0])
			fmt.Printf("  ✓ Found %s: %s\n", lp.label, filepath.Base(matches[0]))
		} else {
			fmt.Printf("  ✗ Missing %s file\n", lp.label)
		}
	}
	fmt.Println()
	return ls, nil
}

// MaskFor returns the solder mask file for a board side.
func (ls LayerSet) MaskFor(side string) string {
	if side == placement.SideBottom {
		return ls.BackMask
	}
	return ls.FrontMask
}

// SilkFor returns the silkscreen file for a board side.
func (ls LayerSet) SilkFor(side string) string {
	if side == placement.SideBottom {
		return ls.BackSilk
	}
	return ls.FrontSilk
}

// PasteFor returns the solder paste file for a board side.
func (ls LayerSet) PasteFor(side string) string {
	if side == placement.SideBottom {
		return ls.BackPaste
	}
	return ls.FrontPaste
}
