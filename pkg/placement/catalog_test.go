package placement

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"LED.svg", "Resistor.svg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.svg"), 0o755); err != nil {
		t.Fatal(err)
	}

	cat, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (non-SVG and directories skipped)", cat.Len())
	}
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"LED", "Resistor"}) {
		t.Errorf("Names = %v", got)
	}
	if !cat.Contains("LED") || cat.Contains("notes") {
		t.Error("Contains misreports catalog membership")
	}
	p, ok := cat.Path("Resistor")
	if !ok || p != filepath.Join(dir, "Resistor.svg") {
		t.Errorf("Path(Resistor) = %q, %v", p, ok)
	}
}

func TestNewCatalogCreatesFolder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artwork")
	cat, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("Len = %d, want 0", cat.Len())
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("artwork folder not created: %v", err)
	}
}
