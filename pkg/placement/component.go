// Package placement maps component position records to footprint
// artwork. It loads the position table, discovers the artwork catalog,
// and resolves each component to an asset through a layered rule system
// with persisted per-reference overrides.
package placement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Board sides as recorded in the position table.
const (
	SideTop    = "top"
	SideBottom = "bottom"
)

// Component is one row of the position table: a single physical
// component with its placement on the board. Immutable after load; the
// reference designator is the join key to every other entity.
type Component struct {
	Reference string  // unique designator, e.g. "R1"
	Value     string  // component value, e.g. "10k"
	Footprint string  // footprint/package name, e.g. "R_0603"
	X         float64 // position X, origin at the outline's minimum corner
	Y         float64 // position Y, source convention has Y pointing up
	Rotation  float64 // rotation in degrees
	Side      string  // SideTop or SideBottom
}

// Prefix returns the leading letter run of the reference designator
// ("SW12" -> "SW"). Empty references yield an empty prefix.
func (c Component) Prefix() string {
	for i, r := range c.Reference {
		if r >= '0' && r <= '9' {
			return c.Reference[:i]
		}
	}
	return c.Reference
}

// Required position table columns.
var positionColumns = []string{"Ref", "Val", "Package", "PosX", "PosY", "Rot", "Side"}

// LoadPositions reads the component position table. Malformed rows are
// skipped with a report; a missing file or header is an error because
// no placement is possible without the table.
func LoadPositions(filename string) ([]Component, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open position table: %w", err)
	}
	defer f.Close()

	return ReadPositions(f)
}

// ReadPositions parses position records from a reader.
func ReadPositions(r io.Reader) ([]Component, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read position table header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range positionColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("position table missing required column %q", name)
		}
	}

	var components []Component
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("[WARN] Skipping malformed position row: %v\n", err)
			skipped++
			continue
		}

		comp, err := parsePositionRow(row, cols)
		if err != nil {
			fmt.Printf("[WARN] Skipping position row %v: %v\n", row, err)
			skipped++
			continue
		}
		components = append(components, comp)
	}

	if skipped > 0 {
		fmt.Printf("[WARN] Skipped %d malformed position rows\n", skipped)
	}
	return components, nil
}

func parsePositionRow(row []string, cols map[string]int) (Component, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.Trim(strings.TrimSpace(row[i]), `"`), nil
	}
	num := func(name string) (float64, error) {
		s, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return v, nil
	}

	var comp Component
	var err error
	if comp.Reference, err = field("Ref"); err != nil {
		return Component{}, err
	}
	if comp.Value, err = field("Val"); err != nil {
		return Component{}, err
	}
	if comp.Footprint, err = field("Package"); err != nil {
		return Component{}, err
	}
	if comp.X, err = num("PosX"); err != nil {
		return Component{}, err
	}
	if comp.Y, err = num("PosY"); err != nil {
		return Component{}, err
	}
	if comp.Rotation, err = num("Rot"); err != nil {
		return Component{}, err
	}
	side, err := field("Side")
	if err != nil {
		return Component{}, err
	}
	comp.Side = strings.ToLower(side)
	return comp, nil
}
