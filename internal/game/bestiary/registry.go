package bestiary

import (
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

// Registry holds all loaded monster definitions indexed by ID.
type Registry struct {
	monsters map[string]*Monster
	order    []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{monsters: make(map[string]*Monster)}
}

// Register adds m to the registry.
//
// Precondition:  m must not be nil.
// Postcondition: Monster(m.ID) returns m; returns error if m.ID already registered.
func (r *Registry) Register(m *Monster) error {
	if _, exists := r.monsters[m.ID]; exists {
		return fmt.Errorf("bestiary: Registry.Register: monster ID %q already registered", m.ID)
	}
	r.monsters[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

// Monster returns the Monster for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Monster(id string) (*Monster, bool) {
	m, ok := r.monsters[id]
	return m, ok
}

// All returns all registered monsters in registration order.
func (r *Registry) All() []*Monster {
	out := make([]*Monster, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.monsters[id])
	}
	return out
}

// Random returns a uniformly chosen monster definition, or nil when the
// registry is empty.
//
// Precondition: src must be non-nil.
func (r *Registry) Random(src dice.Source) *Monster {
	if len(r.order) == 0 {
		return nil
	}
	return r.monsters[r.order[src.Intn(len(r.order))]]
}

// LoadRegistry loads all monsters from dir into a fresh Registry.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadRegistry(dir string) (*Registry, error) {
	monsters, err := LoadMonsters(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, m := range monsters {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}
