package render

import "testing"

func TestPaletteFromColors(t *testing.T) {
	p, err := PaletteFromColors([]string{"#000", "#111", "#222", "#333"})
	if err != nil {
		t.Fatalf("PaletteFromColors: %v", err)
	}
	want := Palette{Background: "#000", Board: "#111", Silk: "#222", Pad: "#333"}
	if p != want {
		t.Errorf("palette = %+v, want %+v", p, want)
	}

	if _, err := PaletteFromColors([]string{"#000"}); err == nil {
		t.Error("expected error for wrong color count")
	}
	if _, err := PaletteFromColors(nil); err == nil {
		t.Error("expected error for no colors")
	}
}
