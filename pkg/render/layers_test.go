package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenTraceLab/boardforge/pkg/placement"
)

func TestFindLayerFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"demo-Edge_Cuts.svg",
		"demo-F_Mask.svg",
		"demo-B_Silkscreen.svg",
		"demo-pos.csv",
		"unrelated.svg",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ls, err := FindLayerFiles(dir)
	if err != nil {
		t.Fatalf("FindLayerFiles: %v", err)
	}

	if filepath.Base(ls.Outline) != "demo-Edge_Cuts.svg" {
		t.Errorf("Outline = %q", ls.Outline)
	}
	if filepath.Base(ls.FrontMask) != "demo-F_Mask.svg" {
		t.Errorf("FrontMask = %q", ls.FrontMask)
	}
	if filepath.Base(ls.BackSilk) != "demo-B_Silkscreen.svg" {
		t.Errorf("BackSilk = %q", ls.BackSilk)
	}
	if filepath.Base(ls.Positions) != "demo-pos.csv" {
		t.Errorf("Positions = %q", ls.Positions)
	}
	if ls.BackMask != "" || ls.FrontSilk != "" || ls.FrontPaste != "" || ls.BackPaste != "" {
		t.Errorf("unexpected layers found: %+v", ls)
	}
}

func TestLayerSetSideSelectors(t *testing.T) {
	ls := LayerSet{
		FrontMask:  "fm",
		BackMask:   "bm",
		FrontSilk:  "fs",
		BackSilk:   "bs",
		FrontPaste: "fp",
		BackPaste:  "bp",
	}

	if ls.MaskFor(placement.SideTop) != "fm" || ls.MaskFor(placement.SideBottom) != "bm" {
		t.Error("MaskFor picked the wrong side")
	}
	if ls.SilkFor(placement.SideTop) != "fs" || ls.SilkFor(placement.SideBottom) != "bs" {
		t.Error("SilkFor picked the wrong side")
	}
	if ls.PasteFor(placement.SideTop) != "fp" || ls.PasteFor(placement.SideBottom) != "bp" {
		t.Error("PasteFor picked the wrong side")
	}
}
