// Package character defines the player character model: a combat entity plus
// the progression state (race, level, experience, spells, slots) that only
// player-controlled characters carry.
package character

import (
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
)

// Character is a player character: one combat Entity with an attached
// progression capability. Monsters stay plain Entities.
type Character struct {
	entity.Entity

	// RaceName is the display name of the character's race; the resolved
	// bonus table is captured at build time.
	RaceName    string
	raceBonuses map[string]int

	// BaseHP is the pre-modifier hit point baseline used when stats are rolled.
	BaseHP int

	// Level is the character level, 1..ruleset.MaxLevel.
	Level int
	// XP is cumulative experience; it only ever increases.
	XP int

	// Slots and MaxSlots map spell level to remaining and maximum slot counts.
	// Invariant: Slots[l] <= MaxSlots[l] for every level l.
	Slots    map[int]int
	MaxSlots map[int]int

	spells []*magic.Spell // known spells in learn order, distinct by ID
}

// Build constructs a level-1 Character with the given race and hit point
// baseline. Stats are not rolled yet; slot pools come from the level-1 row of
// slotTable. A nil race is legal and simply grants no bonuses.
//
// Precondition: name must be non-empty; slotTable must be non-nil.
// Postcondition: Returns a Character ready for RollStats, or a non-nil error.
func Build(name string, race *ruleset.Race, baseHP int, slotTable *ruleset.SlotTable) (*Character, error) {
	if name == "" {
		return nil, fmt.Errorf("character: name must not be empty")
	}
	if baseHP < 1 {
		return nil, fmt.Errorf("character: base hp must be >= 1, got %d", baseHP)
	}
	if slotTable == nil {
		return nil, fmt.Errorf("character: slot table must not be nil")
	}

	c := &Character{
		Entity:   entity.New(name),
		BaseHP:   baseHP,
		Level:    1,
		Slots:    slotTable.SlotsFor(1),
		MaxSlots: slotTable.SlotsFor(1),
	}
	if race != nil {
		c.RaceName = race.Name
		c.raceBonuses = race.Bonuses
	}
	return c, nil
}

// RollStats rolls all six ability scores (3d6 each, assigned atomically) and
// derives the hit point pool: MaxHP = BaseHP + CON modifier, HP = MaxHP.
//
// Precondition: src must be non-nil.
// Postcondition: Stats.Rolled() is true and HP == MaxHP.
func (c *Character) RollStats(src dice.Source) error {
	c.Stats.RollScores(src)
	conMod, err := c.Stats.Modifier(entity.CON)
	if err != nil {
		return err
	}
	c.MaxHP = c.BaseHP + conMod
	c.HP = c.MaxHP
	return nil
}

// ApplyRacialBonuses adds the race's bonus for each ability present in the
// stat block; abilities without a configured bonus are unchanged, and an
// unknown or absent race is a no-op. By convention this is called exactly once
// after RollStats — calling it again double-applies the bonuses.
func (c *Character) ApplyRacialBonuses() {
	for key, bonus := range c.raceBonuses {
		if a, ok := entity.ParseAbility(key); ok {
			c.Stats.AddBonus(a, bonus)
		}
	}
}

// LearnSpell adds s to the character's known spells.
//
// Precondition: s must be non-nil.
// Postcondition: Knows(s) is true; returns an error if the spell was already
// known (known spells stay distinct).
func (c *Character) LearnSpell(s *magic.Spell) error {
	if c.Knows(s) {
		return fmt.Errorf("character: %s already knows %s", c.Name, s.Name)
	}
	c.spells = append(c.spells, s)
	return nil
}

// Knows reports whether the character knows the given spell (matched by ID).
func (c *Character) Knows(s *magic.Spell) bool {
	if s == nil {
		return false
	}
	for _, known := range c.spells {
		if known.ID == s.ID {
			return true
		}
	}
	return false
}

// KnownSpells returns a copy of the known spells in learn order.
func (c *Character) KnownSpells() []*magic.Spell {
	out := make([]*magic.Spell, len(c.spells))
	copy(out, c.spells)
	return out
}
