// Package registry holds the immutable table of known document types: their
// category, display title, detection phrases and extractable fields.
//
// A Registry is built once at startup and shared by reference. Nothing in it
// changes after construction, so concurrent readers need no locking.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joseph-ayodele/docsplit/constants"
)

// Definition describes one document type.
type Definition struct {
	TypeID           constants.DocType  `json:"id" yaml:"id"`
	Category         constants.Category `json:"category" yaml:"category"`
	Title            string             `json:"title" yaml:"title"`
	Patterns         []string           `json:"patterns" yaml:"patterns"`
	ExtractionFields []string           `json:"extraction_fields" yaml:"extraction_fields"`
}

func (d Definition) clone() Definition {
	d.Patterns = slices.Clone(d.Patterns)
	d.ExtractionFields = slices.Clone(d.ExtractionFields)
	return d
}

// Registry is an ordered, read-only set of definitions. Declaration order is
// significant: it breaks classifier ties and decides which type a page
// triggers when several match.
type Registry struct {
	defs []Definition
	byID map[constants.DocType]int
}

// New validates defs and returns a registry owning private copies of them.
func New(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("registry: no definitions")
	}
	r := &Registry{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[constants.DocType]int, len(defs)),
	}
	for i, d := range defs {
		if _, ok := constants.ParseDocType(string(d.TypeID)); !ok {
			return nil, fmt.Errorf("registry: definition %d: unknown type %q", i, d.TypeID)
		}
		if d.TypeID.IsFallback() {
			return nil, fmt.Errorf("registry: definition %d: %q is reserved for fallbacks", i, d.TypeID)
		}
		if _, dup := r.byID[d.TypeID]; dup {
			return nil, fmt.Errorf("registry: duplicate type %q", d.TypeID)
		}
		if _, ok := constants.ParseCategory(string(d.Category)); !ok {
			return nil, fmt.Errorf("registry: type %q: unknown category %q", d.TypeID, d.Category)
		}
		if strings.TrimSpace(d.Title) == "" {
			return nil, fmt.Errorf("registry: type %q: empty title", d.TypeID)
		}
		if len(d.Patterns) == 0 {
			return nil, fmt.Errorf("registry: type %q: no patterns", d.TypeID)
		}

		c := d.clone()
		for j, p := range c.Patterns {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				return nil, fmt.Errorf("registry: type %q: pattern %d is empty", d.TypeID, j)
			}
			c.Patterns[j] = p
		}
		r.byID[c.TypeID] = len(r.defs)
		r.defs = append(r.defs, c)
	}
	return r, nil
}

// MustNew is New for static tables; it panics on invalid input.
func MustNew(defs []Definition) *Registry {
	r, err := New(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// Definitions returns copies of all definitions in declaration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.clone()
	}
	return out
}

// Lookup returns the definition for id.
func (r *Registry) Lookup(id constants.DocType) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i].clone(), true
}

// Title returns the display title for id, including the fallback types.
func (r *Registry) Title(id constants.DocType) string {
	if id.IsFallback() {
		return id.FallbackTitle()
	}
	if i, ok := r.byID[id]; ok {
		return r.defs[i].Title
	}
	return string(id)
}

// Scan calls fn for every definition in declaration order until fn returns
// false. fn must not retain or modify the definition's slices.
func (r *Registry) Scan(fn func(d Definition) bool) {
	for _, d := range r.defs {
		if !fn(d) {
			return
		}
	}
}
