package placement

import (
	"fmt"
	"strings"
)

// Resolver maps a component record to an artwork asset. Resolution
// order: persisted per-reference override, then heuristic keyword
// search over the rule table, then a catalog search per keyword. All
// collaborators are constructed once per run and passed in explicitly.
type Resolver struct {
	catalog *Catalog
	config  *Config
	rules   *RuleTable
}

// NewResolver creates a resolver over a catalog, persisted config and
// rule table.
func NewResolver(catalog *Catalog, config *Config, rules *RuleTable) *Resolver {
	return &Resolver{catalog: catalog, config: config, rules: rules}
}

// Config returns the resolver's mapping table.
func (r *Resolver) Config() *Config {
	return r.config
}

// Catalog returns the resolver's artwork catalog.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve returns the asset name and file path for a component. A
// persisted override wins when its asset still exists in the catalog;
// a stale override is reported and falls through to the heuristics.
// The second result is false when no asset resolves; the caller must
// render without artwork and report, not fail the run.
func (r *Resolver) Resolve(comp Component) (name string, path string, ok bool) {
	if asset, set := r.config.Asset(comp.Reference); set {
		if p, exists := r.catalog.Path(asset); exists {
			return asset, p, true
		}
		fmt.Printf("[WARN] Artwork %s.svg for %s not found in catalog\n", asset, comp.Reference)
	}

	asset, found := r.autoAssign(comp)
	if !found {
		return "", "", false
	}
	p, exists := r.catalog.Path(asset)
	if !exists {
		return "", "", false
	}
	return asset, p, true
}

// SyncConfig runs the resolution batch for a freshly loaded position
// table: every reference gets a config entry, unset entries get a
// heuristic asset, the derived global index is rebuilt first-writer-
// wins, and the table is persisted once if anything changed.
func (r *Resolver) SyncConfig(components []Component) error {
	for _, comp := range components {
		r.config.Ensure(comp)
		if _, set := r.config.Asset(comp.Reference); set {
			continue
		}
		if asset, found := r.autoAssign(comp); found {
			r.config.SetAsset(comp.Reference, asset)
		}
	}
	r.config.RebuildGlobalMappings(r.catalog)
	return r.config.Save()
}

// autoAssign finds the best heuristic catalog match for a component.
func (r *Resolver) autoAssign(comp Component) (string, bool) {
	return r.findBestMatch(r.rules.SearchTerms(comp))
}

// findBestMatch searches the catalog for each keyword in order: an
// exact case-insensitive name match first, then a substring match in
// either direction. The first keyword yielding any match wins.
func (r *Resolver) findBestMatch(terms []string) (string, bool) {
	for _, term := range terms {
		lower := strings.ToLower(term)
		for _, name := range r.catalog.Names() {
			if lower == strings.ToLower(name) {
				return name, true
			}
		}
		for _, name := range r.catalog.Names() {
			nameLower := strings.ToLower(name)
			if strings.Contains(nameLower, lower) || strings.Contains(lower, nameLower) {
				return name, true
			}
		}
	}
	return "", false
}
