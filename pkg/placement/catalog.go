package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Catalog is the set of available artwork assets, keyed by file stem.
// Discovered once from the artwork folder and immutable for the run;
// the name list keeps directory order so substring searches are
// deterministic.
type Catalog struct {
	names []string
	paths map[string]string
}

// NewCatalog discovers artwork SVGs in dir, creating the folder if it
// does not exist yet so a first run has somewhere to put assets.
func NewCatalog(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artwork folder: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read artwork folder: %w", err)
	}

	cat := &Catalog{paths: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		cat.names = append(cat.names, name)
		cat.paths[name] = filepath.Join(dir, entry.Name())
	}
	return cat, nil
}

// Names returns the asset names in deterministic catalog order.
func (c *Catalog) Names() []string {
	return c.names
}

// Path returns the file path of a named asset.
func (c *Catalog) Path(name string) (string, bool) {
	p, ok := c.paths[name]
	return p, ok
}

// Contains reports whether a named asset exists in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.paths[name]
	return ok
}

// Len returns the number of assets.
func (c *Catalog) Len() int {
	return len(c.names)
}

// newCatalogFromNames builds an in-memory catalog, for tests.
func newCatalogFromNames(names ...string) *Catalog {
	cat := &Catalog{paths: make(map[string]string)}
	for _, name := range names {
		cat.names = append(cat.names, name)
		cat.paths[name] = name + ".svg"
	}
	return cat
}
