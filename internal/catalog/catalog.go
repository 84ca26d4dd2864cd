// Package catalog loads and serves the flat part catalog. The catalog is
// read once per session and treated as immutable afterwards; lookups never
// fail, they degrade to placeholder records so the presentation layer can
// always show something for a dangling reference.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Part is one inventoriable catalog entry.
type Part struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// file is the on-disk envelope: {version, updated_at, parts:[...]}.
type file struct {
	Version   int    `json:"version"`
	UpdatedAt string `json:"updated_at"`
	Parts     []Part `json:"parts"`
}

// Catalog holds the loaded part collection, keyed by id and in file order.
type Catalog struct {
	parts []Part
	byID  map[string]Part
}

// Load reads the part collection from path. Parts without an id are kept in
// the ordered view but cannot be looked up. When two parts share an id the
// last-loaded record shadows the earlier one in the id index.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parts file: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse parts file %s: %w", path, err)
	}

	return New(f.Parts), nil
}

// New builds a catalog from an already-decoded part list, applying the
// default-substitution rules: a part with no name gets a positional
// placeholder.
func New(parts []Part) *Catalog {
	c := &Catalog{
		parts: make([]Part, len(parts)),
		byID:  make(map[string]Part, len(parts)),
	}
	for i, p := range parts {
		if p.Name == "" {
			p.Name = fmt.Sprintf("Part %d", i+1)
		}
		c.parts[i] = p
		if p.ID != "" {
			c.byID[p.ID] = p
		}
	}
	return c
}

// Len returns the number of loaded parts.
func (c *Catalog) Len() int { return len(c.parts) }

// Parts returns all parts in file order.
func (c *Catalog) Parts() []Part { return c.parts }

// Get returns the part with the given id.
func (c *Catalog) Get(id string) (Part, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Resolve returns the part with the given id, or a placeholder record when
// the id is unknown. The boolean reports whether the id resolved. Unresolved
// part references are a tolerated data-quality issue, not an error.
func (c *Catalog) Resolve(id string) (Part, bool) {
	if p, ok := c.byID[id]; ok {
		return p, true
	}
	name := id
	if name == "" {
		name = "Unknown part"
	}
	return Part{ID: id, Name: name}, false
}
