package magic

import "fmt"

// Registry holds all loaded spell definitions indexed by ID.
type Registry struct {
	spells map[string]*Spell
	order  []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{spells: make(map[string]*Spell)}
}

// Register adds s to the registry.
//
// Precondition:  s must not be nil.
// Postcondition: Spell(s.ID) returns s; returns error if s.ID already registered.
func (r *Registry) Register(s *Spell) error {
	if _, exists := r.spells[s.ID]; exists {
		return fmt.Errorf("magic: Registry.Register: spell ID %q already registered", s.ID)
	}
	r.spells[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

// Spell returns the Spell for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Spell(id string) (*Spell, bool) {
	s, ok := r.spells[id]
	return s, ok
}

// All returns all registered spells in registration order.
func (r *Registry) All() []*Spell {
	out := make([]*Spell, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.spells[id])
	}
	return out
}

// LoadRegistry loads all spells from dir into a fresh Registry.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadRegistry(dir string) (*Registry, error) {
	spells, err := LoadSpells(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, s := range spells {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
