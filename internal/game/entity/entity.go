package entity

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/dndgame/internal/game/equipment"
)

// DefaultArmorClass is the armor class of an entity with no protection.
const DefaultArmorClass = 10

// Entity is one concrete combat participant — a player character or a monster.
// Player-only progression state lives in the character package; an Entity by
// itself carries everything the combat engine needs.
//
// HP mutation is the responsibility of the engines that deal damage or
// healing; each mutator clamps HP at a floor of 0. Entity performs no
// clamping of its own, and callers must not rely on it doing so.
type Entity struct {
	ID         string
	Name       string
	Stats      StatBlock
	HP         int // current hit points, 0..MaxHP
	MaxHP      int // fixed at construction / level-up
	ArmorClass int
	Weapon     *equipment.Weapon // shared registry reference; nil = unarmed
}

// New returns an Entity with a fresh ID, default armor class, and no weapon.
//
// Postcondition: returned entity has an unrolled stat block and 0 hit points.
func New(name string) Entity {
	return Entity{
		ID:         uuid.NewString(),
		Name:       name,
		ArmorClass: DefaultArmorClass,
	}
}

// IsAlive reports whether the entity can still act.
//
// Postcondition: Returns true iff HP > 0.
func (e *Entity) IsAlive() bool { return e.HP > 0 }
