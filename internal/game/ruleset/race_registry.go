package ruleset

import "fmt"

// RaceRegistry provides lookup of race definitions by ID.
type RaceRegistry struct {
	races map[string]*Race
	order []string
}

// NewRaceRegistry returns an empty RaceRegistry.
//
// Postcondition: Returns a non-nil *RaceRegistry ready to accept registrations.
func NewRaceRegistry() *RaceRegistry {
	return &RaceRegistry{races: make(map[string]*Race)}
}

// Register adds a Race to the registry.
//
// Precondition: race must be non-nil with a non-empty ID.
// Postcondition: race is retrievable via Race using race.ID; returns error on
// a duplicate ID.
func (r *RaceRegistry) Register(race *Race) error {
	if race == nil {
		panic("RaceRegistry.Register: precondition violated: race must be non-nil")
	}
	if race.ID == "" {
		panic("RaceRegistry.Register: precondition violated: race ID must be non-empty")
	}
	if _, exists := r.races[race.ID]; exists {
		return fmt.Errorf("ruleset: RaceRegistry.Register: race ID %q already registered", race.ID)
	}
	r.races[race.ID] = race
	r.order = append(r.order, race.ID)
	return nil
}

// Race returns the Race for the given ID, if registered.
//
// Postcondition: Returns the registered Race and true, or nil and false.
func (r *RaceRegistry) Race(id string) (*Race, bool) {
	race, ok := r.races[id]
	return race, ok
}

// All returns all registered races in registration order.
func (r *RaceRegistry) All() []*Race {
	out := make([]*Race, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.races[id])
	}
	return out
}

// LoadRaceRegistry loads all races from dir into a fresh registry.
//
// Postcondition: Returns a populated registry or a non-nil error.
func LoadRaceRegistry(dir string) (*RaceRegistry, error) {
	races, err := LoadRaces(dir)
	if err != nil {
		return nil, err
	}
	reg := NewRaceRegistry()
	for _, race := range races {
		if err := reg.Register(race); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
