package equipment

import "fmt"

// Registry holds all loaded weapon definitions indexed by ID.
// Weapons are registered once at startup and never mutated afterwards.
type Registry struct {
	weapons map[string]*Weapon
	order   []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{weapons: make(map[string]*Weapon)}
}

// Register adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) Register(w *Weapon) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("equipment: Registry.Register: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	r.order = append(r.order, w.ID)
	return nil
}

// Weapon returns the Weapon for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Weapon(id string) (*Weapon, bool) {
	w, ok := r.weapons[id]
	return w, ok
}

// All returns all registered weapons in registration order.
//
// Postcondition: len(result) == number of registered weapons.
func (r *Registry) All() []*Weapon {
	out := make([]*Weapon, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.weapons[id])
	}
	return out
}

// LoadRegistry loads all weapons from dir into a fresh Registry.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadRegistry(dir string) (*Registry, error) {
	weapons, err := LoadWeapons(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, w := range weapons {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}
