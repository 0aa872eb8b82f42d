package scoring

import (
	"fmt"
	"sync"
)

// Registry is an immutable catalog of protocols looked up by id.
type Registry struct {
	protocols map[string]Protocol
	defs      map[string]Definition
	order     []string
}

// NewRegistry builds a registry from the given protocols, in order.
// It rejects empty or duplicate protocol ids, duplicate field ids within a
// definition, and select fields without options.
func NewRegistry(protocols ...Protocol) (*Registry, error) {
	r := &Registry{
		protocols: make(map[string]Protocol, len(protocols)),
		defs:      make(map[string]Definition, len(protocols)),
	}
	for _, p := range protocols {
		def := p.Definition()
		if def.ID == "" {
			return nil, fmt.Errorf("protocol %q has an empty id", def.Name)
		}
		if _, dup := r.protocols[def.ID]; dup {
			return nil, fmt.Errorf("duplicate protocol id %q", def.ID)
		}
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
		r.protocols[def.ID] = p
		r.defs[def.ID] = def
		r.order = append(r.order, def.ID)
	}
	return r, nil
}

func validateDefinition(def Definition) error {
	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if f.ID == "" {
			return fmt.Errorf("%s: field with empty id", def.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("%s: duplicate field id %q", def.ID, f.ID)
		}
		seen[f.ID] = true
		switch f.Kind {
		case KindBoolean, KindNumeric:
		case KindSelect:
			if len(f.Options) == 0 {
				return fmt.Errorf("%s: select field %q has no options", def.ID, f.ID)
			}
		default:
			return fmt.Errorf("%s: field %q has unknown kind %q", def.ID, f.ID, f.Kind)
		}
	}
	return nil
}

// Lookup returns the protocol registered under id.
func (r *Registry) Lookup(id string) (Protocol, error) {
	p, ok := r.protocols[id]
	if !ok {
		return nil, &ConfigurationError{Protocol: id}
	}
	return p, nil
}

// Definition returns the definition registered under id.
func (r *Registry) Definition(id string) (Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, &ConfigurationError{Protocol: id}
	}
	return def, nil
}

// List returns every definition in registration order.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// Len returns the number of registered protocols.
func (r *Registry) Len() int { return len(r.order) }

// Subset returns a registry restricted to the given ids, in the given order.
// An empty list returns r itself.
func (r *Registry) Subset(ids []string) (*Registry, error) {
	if len(ids) == 0 {
		return r, nil
	}
	protocols := make([]Protocol, 0, len(ids))
	for _, id := range ids {
		p, err := r.Lookup(id)
		if err != nil {
			return nil, err
		}
		protocols = append(protocols, p)
	}
	return NewRegistry(protocols...)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(DefaultProtocols()...)
	if err != nil {
		panic(fmt.Sprintf("scoring: invalid built-in catalog: %v", err))
	}
	return r
})

// Default returns the registry of all built-in protocols.
func Default() *Registry { return defaultRegistry() }
