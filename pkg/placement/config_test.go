package placement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	comp := Component{Reference: "R1", Value: "10k", Footprint: "R_0603", Rotation: 90}

	cfg := LoadConfig(dir)
	cfg.Ensure(comp)
	cfg.SetAsset("R1", "Resistor")
	cfg.RebuildGlobalMappings(newCatalogFromNames("Resistor"))
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if cfg.Dirty() {
		t.Error("config still dirty after save")
	}

	loaded := LoadConfig(dir)
	asset, ok := loaded.Asset("R1")
	if !ok || asset != "Resistor" {
		t.Fatalf("Asset(R1) = %q, %v", asset, ok)
	}
	entry, ok := loaded.Entry("R1")
	if !ok {
		t.Fatal("entry R1 missing after reload")
	}
	if entry.Rotation != 90 || entry.Scale != DefaultArtworkScale {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Package != "R_0603" || entry.Value != "10k" {
		t.Errorf("entry = %+v", entry)
	}
	if loaded.Dirty() {
		t.Error("freshly loaded config should not be dirty")
	}
}

func TestConfigFileOrdering(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(dir)
	for _, ref := range []string{"U3", "C1", "R1"} {
		cfg.Ensure(Component{Reference: ref})
	}
	cfg.RebuildGlobalMappings(newCatalogFromNames())
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	// global_mappings leads, then references in sorted order.
	positions := []int{
		strings.Index(text, `"global_mappings"`),
		strings.Index(text, `"C1"`),
		strings.Index(text, `"R1"`),
		strings.Index(text, `"U3"`),
	}
	for i, p := range positions {
		if p < 0 {
			t.Fatalf("key %d missing from %s", i, text)
		}
		if i > 0 && p < positions[i-1] {
			t.Fatalf("keys out of order in:\n%s", text)
		}
	}
}

func TestRebuildGlobalMappingsFirstWriterWins(t *testing.T) {
	cfg := LoadConfig(t.TempDir())
	cfg.Ensure(Component{Reference: "R2", Footprint: "R_0805"})
	cfg.Ensure(Component{Reference: "R1", Footprint: "R_0603", Value: "LED driver"})
	cfg.SetAsset("R2", "Beta")
	cfg.SetAsset("R1", "Alpha")

	cfg.RebuildGlobalMappings(newCatalogFromNames("Alpha", "Beta"))

	// R1 sorts before R2, so its asset claims the shared prefix.
	if got := cfg.global.ByReferencePrefix["R"]; got != "Alpha" {
		t.Errorf("ByReferencePrefix[R] = %q, want Alpha", got)
	}
	if got := cfg.global.ByPackage["R_0805"]; got != "Beta" {
		t.Errorf("ByPackage[R_0805] = %q, want Beta", got)
	}
	if got := cfg.global.ByValueKeyword["led"]; got != "Alpha" {
		t.Errorf("ByValueKeyword[led] = %q, want Alpha", got)
	}
}

func TestSetAssetDirtyOnlyOnChange(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(dir)
	cfg.Ensure(Component{Reference: "R1"})
	cfg.SetAsset("R1", "Resistor")
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	cfg.SetAsset("R1", "Resistor")
	if cfg.Dirty() {
		t.Error("re-setting the same asset must not dirty the table")
	}
	cfg.SetAsset("R1", "Capacitor")
	if !cfg.Dirty() {
		t.Error("changing the asset must dirty the table")
	}

	// Setting an asset for an unknown reference is a no-op.
	cfg2 := LoadConfig(t.TempDir())
	cfg2.SetAsset("GHOST", "Resistor")
	if _, ok := cfg2.Asset("GHOST"); ok {
		t.Error("SetAsset created an entry for an unknown reference")
	}
}

func TestEnsureRefreshesFromPositionTable(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(dir)
	cfg.Ensure(Component{Reference: "C1", Footprint: "C_0603", Value: "100n", Rotation: 45})
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	// Same data again: nothing to save.
	cfg.Ensure(Component{Reference: "C1", Footprint: "C_0603", Value: "100n", Rotation: 45})
	if cfg.Dirty() {
		t.Error("unchanged component dirtied the table")
	}

	// Footprint changed in the position table: entry follows, the
	// persisted rotation stays as the user tuned it.
	cfg.Ensure(Component{Reference: "C1", Footprint: "C_0805", Value: "100n", Rotation: 0})
	entry, _ := cfg.Entry("C1")
	if entry.Package != "C_0805" {
		t.Errorf("Package = %q, want refreshed C_0805", entry.Package)
	}
	if entry.Rotation != 45 {
		t.Errorf("Rotation = %v, persisted value must survive refresh", entry.Rotation)
	}
	if !cfg.Dirty() {
		t.Error("footprint change must dirty the table")
	}
}

func TestRotationAndScaleFor(t *testing.T) {
	cfg := LoadConfig(t.TempDir())
	comp := Component{Reference: "R1", Rotation: 90}

	if got := cfg.RotationFor(comp); got != 90 {
		t.Errorf("RotationFor without entry = %v, want position-table 90", got)
	}
	if got := cfg.ScaleFor(comp); got != 1.0 {
		t.Errorf("ScaleFor without entry = %v, want 1.0", got)
	}

	cfg.Ensure(comp)
	if got := cfg.RotationFor(comp); got != 90 {
		t.Errorf("RotationFor = %v, want 90", got)
	}
	if got := cfg.ScaleFor(comp); got != DefaultArtworkScale {
		t.Errorf("ScaleFor = %v, want default artwork scale", got)
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(dir)
	if cfg == nil {
		t.Fatal("LoadConfig returned nil for corrupt file")
	}
	if _, ok := cfg.Asset("R1"); ok {
		t.Error("corrupt file produced entries")
	}
	cfg.Ensure(Component{Reference: "R1"})
	if err := cfg.Save(); err != nil {
		t.Errorf("Save after corrupt load: %v", err)
	}
}

func TestLoadConfigNullAsset(t *testing.T) {
	dir := t.TempDir()
	raw := `{
  "R1": {"svg": null, "rotation": 0, "scale": 0.056, "package": "R_0603", "value": "10k"}
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(dir)
	if _, ok := cfg.Asset("R1"); ok {
		t.Error("null svg field must read as unmapped")
	}
	if _, ok := cfg.Entry("R1"); !ok {
		t.Error("entry with null svg must still load")
	}
}

func TestSummary(t *testing.T) {
	cfg := LoadConfig(t.TempDir())
	cfg.Ensure(Component{Reference: "R1"})
	cfg.Ensure(Component{Reference: "U9"})
	cfg.Ensure(Component{Reference: "C1"})
	cfg.SetAsset("R1", "Resistor")

	s := cfg.Summary(newCatalogFromNames("Resistor", "LED"))
	if s.Available != 2 || s.Total != 3 || s.Mapped != 1 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Unmapped) != 2 || s.Unmapped[0] != "C1" || s.Unmapped[1] != "U9" {
		t.Errorf("Unmapped = %v, want sorted [C1 U9]", s.Unmapped)
	}
}
