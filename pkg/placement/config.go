package placement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConfigFileName is the persisted mapping table, stored alongside the
// layer files so each board keeps its own component mappings.
const ConfigFileName = "component_config.json"

// DefaultArtworkScale is the initial artwork scale for a newly seen
// component reference. Artwork files are drawn at arbitrary sizes;
// this factor brings the stock library down to board scale.
const DefaultArtworkScale = 0.056

// Entry is the persisted mapping state for one component reference.
// The file is deliberately hand-editable; manual edits win over
// heuristic results on the next run.
type Entry struct {
	SVG      *string `json:"svg"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
	Package  string  `json:"package"`
	Value    string  `json:"value"`
}

// GlobalMappings is the derived index over per-reference entries, used
// only to accelerate future heuristic lookups. Rebuilt, never
// hand-edited.
type GlobalMappings struct {
	AvailableSVGs     []string          `json:"available_svgs"`
	ByReferencePrefix map[string]string `json:"by_reference_prefix"`
	ByPackage         map[string]string `json:"by_package"`
	ByValueKeyword    map[string]string `json:"by_value_keyword"`
}

// Keywords indexed by the derived value-keyword mapping.
var globalValueKeywords = []string{"led", "usb", "esp32", "crystal"}

// Config is the persisted component mapping table. Loaded once at the
// start of a run, mutated in place as components are resolved, and
// saved at most once at the end if anything changed.
type Config struct {
	path    string
	entries map[string]*Entry
	global  *GlobalMappings
	dirty   bool
}

// LoadConfig reads the mapping table from the layer folder, or starts
// an empty one if no table exists yet. A corrupt table is reported and
// replaced rather than aborting the run.
func LoadConfig(layerDir string) *Config {
	cfg := &Config{
		path:    filepath.Join(layerDir, ConfigFileName),
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		return cfg
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		fmt.Printf("[WARN] Failed to load %s: %v\n", cfg.path, err)
		return cfg
	}
	for key, msg := range raw {
		if key == "global_mappings" {
			var gm GlobalMappings
			if err := json.Unmarshal(msg, &gm); err == nil {
				cfg.global = &gm
			}
			continue
		}
		var entry Entry
		if err := json.Unmarshal(msg, &entry); err != nil {
			fmt.Printf("[WARN] Failed to parse config entry %q: %v\n", key, err)
			continue
		}
		cfg.entries[key] = &entry
	}
	return cfg
}

// Path returns the on-disk location of the mapping table.
func (c *Config) Path() string {
	return c.path
}

// Entry returns the mapping entry for a reference.
func (c *Config) Entry(ref string) (*Entry, bool) {
	e, ok := c.entries[ref]
	return e, ok
}

// Asset returns the persisted asset name for a reference, if one is
// set.
func (c *Config) Asset(ref string) (string, bool) {
	e, ok := c.entries[ref]
	if !ok || e.SVG == nil || *e.SVG == "" {
		return "", false
	}
	return *e.SVG, true
}

// SetAsset records the resolved asset for a reference.
func (c *Config) SetAsset(ref, name string) {
	e, ok := c.entries[ref]
	if !ok {
		return
	}
	if e.SVG != nil && *e.SVG == name {
		return
	}
	e.SVG = &name
	c.dirty = true
}

// Ensure creates the entry for a component if the reference has not
// been seen before, and refreshes the footprint and value fields so
// the table reflects the current position table.
func (c *Config) Ensure(comp Component) *Entry {
	e, ok := c.entries[comp.Reference]
	if !ok {
		e = &Entry{
			Rotation: comp.Rotation,
			Scale:    DefaultArtworkScale,
			Package:  comp.Footprint,
			Value:    comp.Value,
		}
		c.entries[comp.Reference] = e
		c.dirty = true
		return e
	}
	if e.Package != comp.Footprint || e.Value != comp.Value {
		e.Package = comp.Footprint
		e.Value = comp.Value
		c.dirty = true
	}
	return e
}

// RotationFor returns the effective rotation for a component: the
// persisted per-reference rotation when an entry exists, otherwise the
// position-table rotation.
func (c *Config) RotationFor(comp Component) float64 {
	if e, ok := c.entries[comp.Reference]; ok {
		return e.Rotation
	}
	return comp.Rotation
}

// ScaleFor returns the effective artwork scale for a component.
func (c *Config) ScaleFor(comp Component) float64 {
	if e, ok := c.entries[comp.Reference]; ok {
		return e.Scale
	}
	return 1.0
}

// RebuildGlobalMappings regenerates the derived index from the
// per-reference entries. First writer wins: an existing mapping for a
// prefix, footprint or value keyword is never overwritten by a later
// component.
func (c *Config) RebuildGlobalMappings(catalog *Catalog) {
	if c.global == nil {
		c.global = &GlobalMappings{
			ByReferencePrefix: make(map[string]string),
			ByPackage:         make(map[string]string),
			ByValueKeyword:    make(map[string]string),
		}
		c.dirty = true
	}
	if c.global.ByReferencePrefix == nil {
		c.global.ByReferencePrefix = make(map[string]string)
	}
	if c.global.ByPackage == nil {
		c.global.ByPackage = make(map[string]string)
	}
	if c.global.ByValueKeyword == nil {
		c.global.ByValueKeyword = make(map[string]string)
	}
	c.global.AvailableSVGs = catalog.Names()

	for _, ref := range c.sortedRefs() {
		entry := c.entries[ref]
		if entry.SVG == nil || *entry.SVG == "" {
			continue
		}
		svg := *entry.SVG
		if ref != "" {
			prefix := ref[:1]
			if _, seen := c.global.ByReferencePrefix[prefix]; !seen {
				c.global.ByReferencePrefix[prefix] = svg
			}
		}
		if entry.Package != "" {
			if _, seen := c.global.ByPackage[entry.Package]; !seen {
				c.global.ByPackage[entry.Package] = svg
			}
		}
		value := strings.ToLower(entry.Value)
		for _, keyword := range globalValueKeywords {
			if strings.Contains(value, keyword) {
				if _, seen := c.global.ByValueKeyword[keyword]; !seen {
					c.global.ByValueKeyword[keyword] = svg
				}
			}
		}
	}
}

// Dirty reports whether the table has unsaved changes.
func (c *Config) Dirty() bool {
	return c.dirty
}

// Save writes the mapping table if anything changed since load. The
// derived global_mappings block comes first, then references in sorted
// order, so the file stays pleasant to hand-edit.
func (c *Config) Save() error {
	if !c.dirty {
		return nil
	}

	data, err := c.marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	c.dirty = false
	return nil
}

// marshal produces the ordered JSON document. encoding/json sorts map
// keys, which would bury global_mappings among the references, so the
// top-level object is assembled by hand from per-value encodings.
func (c *Config) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	writeField := func(key string, value any, last bool) error {
		data, err := json.MarshalIndent(value, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(&buf, "  %q: %s", key, data)
		if !last {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
		return nil
	}

	refs := c.sortedRefs()
	if c.global != nil {
		if err := writeField("global_mappings", c.global, len(refs) == 0); err != nil {
			return nil, err
		}
	}
	for i, ref := range refs {
		if err := writeField(ref, c.entries[ref], i == len(refs)-1); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (c *Config) sortedRefs() []string {
	refs := make([]string, 0, len(c.entries))
	for ref := range c.entries {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// MappingSummary describes how much of the position table resolved to
// artwork.
type MappingSummary struct {
	Available int
	Total     int
	Mapped    int
	Unmapped  []string
}

// Summary computes the current mapping coverage.
func (c *Config) Summary(catalog *Catalog) MappingSummary {
	s := MappingSummary{Available: catalog.Len()}
	for _, ref := range c.sortedRefs() {
		s.Total++
		if e := c.entries[ref]; e.SVG != nil && *e.SVG != "" {
			s.Mapped++
		} else {
			s.Unmapped = append(s.Unmapped, ref)
		}
	}
	return s
}
