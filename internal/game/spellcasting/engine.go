// Package spellcasting validates and resolves spell casts against a
// character's slot pools.
package spellcasting

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
)

// ErrCannotCast is the domain error for a cast the character is not entitled
// to: an unknown spell or an empty slot pool. It is distinct from stat lookup
// errors; callers are expected to recover by re-prompting or attacking.
var ErrCannotCast = errors.New("spellcasting: cannot cast")

// Engine resolves spell casts. Stateless apart from its logger.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a spellcasting Engine.
//
// Precondition: logger must be non-nil.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// CanCast reports whether c may cast spell right now: the spell must be
// known, and either be a cantrip or have a remaining slot at its level (a
// missing slot level counts as zero).
func (e *Engine) CanCast(c *character.Character, spell *magic.Spell) bool {
	if !c.Knows(spell) {
		return false
	}
	if spell.IsCantrip() {
		return true
	}
	return c.Slots[spell.Level] > 0
}

// Cast resolves spell from c against target. The entitlement check, the slot
// decrement, and the effect application are one atomic operation: a failed
// cast never consumes a slot.
//
// The resolved amount is spell.Power + the caster's INT modifier, clamped at
// a minimum of 0 — a negative result deals nothing rather than healing, even
// for spells whose negative Power marks healing intent. The target's hit
// points are reduced by the amount and floored at 0.
//
// Postcondition: Returns the applied amount, or ErrCannotCast / a stat
// lookup error with c and target unchanged.
func (e *Engine) Cast(c *character.Character, spell *magic.Spell, target *entity.Entity) (int, error) {
	if !e.CanCast(c, spell) {
		return 0, fmt.Errorf("%w: %s", ErrCannotCast, spell.Name)
	}
	intMod, err := c.Stats.Modifier(entity.INT)
	if err != nil {
		return 0, err
	}

	if !spell.IsCantrip() {
		c.Slots[spell.Level]--
	}

	damage := spell.Power + intMod
	if damage < 0 {
		damage = 0
	}
	target.HP -= damage
	if target.HP < 0 {
		target.HP = 0
	}

	e.logger.Debug("spell cast",
		zap.String("caster", c.Name),
		zap.String("spell", spell.Name),
		zap.Int("spell_level", spell.Level),
		zap.String("target", target.Name),
		zap.Int("damage", damage),
	)
	return damage, nil
}

// AvailableSpells returns the spells c can cast right now, preserving the
// learn order of the known-spells list.
func (e *Engine) AvailableSpells(c *character.Character) []*magic.Spell {
	var out []*magic.Spell
	for _, s := range c.KnownSpells() {
		if e.CanCast(c, s) {
			out = append(out, s)
		}
	}
	return out
}
