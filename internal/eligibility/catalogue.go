package eligibility

import (
	"fmt"
	"sync"
)

// Catalogue is a read-only, ordered table of scheme definitions indexed by
// scheme id. Build one with NewCatalogue; it is safe for concurrent use.
type Catalogue struct {
	schemes []SchemeDefinition
	index   map[string]int
}

// NewCatalogue validates the definitions and freezes them into a catalogue.
// Scheme ids must be unique, criterion and document ids unique within their
// scheme, and every criterion a rule refers to must exist.
func NewCatalogue(defs ...SchemeDefinition) (*Catalogue, error) {
	c := &Catalogue{
		schemes: make([]SchemeDefinition, 0, len(defs)),
		index:   make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("scheme %q has no id", def.Name)
		}
		if _, dup := c.index[def.ID]; dup {
			return nil, fmt.Errorf("duplicate scheme id %q", def.ID)
		}
		if err := validateScheme(def); err != nil {
			return nil, fmt.Errorf("scheme %s: %w", def.ID, err)
		}
		c.index[def.ID] = len(c.schemes)
		c.schemes = append(c.schemes, def)
	}
	return c, nil
}

func validateScheme(def SchemeDefinition) error {
	criteria := make(map[string]bool, len(def.Criteria))
	for _, cr := range def.Criteria {
		if cr.ID == "" {
			return fmt.Errorf("criterion %q has no id", cr.Label)
		}
		if criteria[cr.ID] {
			return fmt.Errorf("duplicate criterion id %q", cr.ID)
		}
		if cr.Test == nil {
			return fmt.Errorf("criterion %q has no test", cr.ID)
		}
		criteria[cr.ID] = true
	}
	docs := make(map[string]bool, len(def.Documents))
	for _, d := range def.Documents {
		if docs[d.ID] {
			return fmt.Errorf("duplicate document id %q", d.ID)
		}
		docs[d.ID] = true
	}
	if def.Rule.apply == nil {
		return fmt.Errorf("no eligibility rule")
	}
	for _, ref := range def.Rule.Refs {
		if !criteria[ref] {
			return fmt.Errorf("rule %s references unknown criterion %q", def.Rule.Kind, ref)
		}
	}
	return nil
}

// Len returns the number of schemes.
func (c *Catalogue) Len() int {
	return len(c.schemes)
}

// Schemes returns the definitions in catalogue order. The slice is a copy.
func (c *Catalogue) Schemes() []SchemeDefinition {
	out := make([]SchemeDefinition, len(c.schemes))
	copy(out, c.schemes)
	return out
}

// Lookup returns the scheme with the given id, or ok=false.
func (c *Catalogue) Lookup(id string) (SchemeDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return SchemeDefinition{}, false
	}
	return c.schemes[i], true
}

// Subset returns a catalogue restricted to the given ids, in catalogue
// order. An empty id list returns c itself.
func (c *Catalogue) Subset(ids []string) (*Catalogue, error) {
	if len(ids) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return nil, fmt.Errorf("unknown scheme id %q", id)
		}
		want[id] = true
	}
	var defs []SchemeDefinition
	for _, def := range c.schemes {
		if want[def.ID] {
			defs = append(defs, def)
		}
	}
	return NewCatalogue(defs...)
}

var (
	defaultOnce      sync.Once
	defaultCatalogue *Catalogue
)

// DefaultCatalogue returns the built-in scheme catalogue, constructed once.
// It panics if the built-in definitions are invalid, which the package tests
// guard against.
func DefaultCatalogue() *Catalogue {
	defaultOnce.Do(func() {
		c, err := NewCatalogue(builtinSchemes()...)
		if err != nil {
			panic(fmt.Sprintf("eligibility: invalid built-in catalogue: %v", err))
		}
		defaultCatalogue = c
	})
	return defaultCatalogue
}
