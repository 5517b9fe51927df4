// Package progression implements experience accrual, level-up transitions,
// and resting for player characters.
package progression

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
)

// hitDieSides is the hit die rolled for hit point growth on level-up.
const hitDieSides = 10

// LevelUp describes one completed level transition.
type LevelUp struct {
	// Level is the level reached.
	Level int
	// HPGain is the hit point growth applied to MaxHP, always >= 1.
	HPGain int
	// ImprovedAbility is the ability raised by the level-4-multiple
	// improvement, or empty when the level granted none.
	ImprovedAbility entity.Ability
}

// Result reports the outcome of one GainXP call.
type Result struct {
	// XPGained is the amount added.
	XPGained int
	// Levels holds one entry per level-up, in order. A single large award can
	// produce several.
	Levels []LevelUp
}

// LeveledUp reports whether at least one level-up occurred.
func (r Result) LeveledUp() bool { return len(r.Levels) > 0 }

// Engine drives character progression against injected rule tables.
type Engine struct {
	xp     *ruleset.ExperienceTable
	slots  *ruleset.SlotTable
	src    dice.Source
	logger *zap.Logger
}

// NewEngine creates a progression Engine.
//
// Precondition: all arguments must be non-nil; xp and slots must be validated.
func NewEngine(xp *ruleset.ExperienceTable, slots *ruleset.SlotTable, src dice.Source, logger *zap.Logger) *Engine {
	return &Engine{xp: xp, slots: slots, src: src, logger: logger}
}

// GainXP adds amount to the character's experience, then performs every
// level-up the new total has earned: while the level is below
// ruleset.MaxLevel and the XP meets the next threshold, the character levels
// up. One call can cross several levels.
//
// Precondition: amount is assumed >= 0; negative amounts are not validated
// and their behavior is undefined.
// Postcondition: c.XP increased by amount; c.Level advanced per the table.
func (e *Engine) GainXP(c *character.Character, amount int) (Result, error) {
	c.XP += amount
	result := Result{XPGained: amount}

	for c.Level < ruleset.MaxLevel {
		threshold, ok := e.xp.Threshold(c.Level + 1)
		if !ok || c.XP < threshold {
			break
		}
		up, err := e.levelUp(c)
		if err != nil {
			return result, err
		}
		result.Levels = append(result.Levels, up)
	}

	e.logger.Debug("experience gained",
		zap.String("character", c.Name),
		zap.Int("amount", amount),
		zap.Int("total_xp", c.XP),
		zap.Int("level", c.Level),
		zap.Bool("leveled_up", result.LeveledUp()),
	)
	return result, nil
}

// levelUp performs a single level transition:
//  1. Level increments.
//  2. MaxHP grows by max(1, d10 + CON modifier); HP is set to MaxHP.
//  3. Slot pools are replaced from the table for the new level — a level-up
//     is also a full slot refresh.
//  4. Levels divisible by 4 raise one uniformly chosen ability by 1.
//
// Precondition: c.Level < ruleset.MaxLevel and c has rolled stats.
func (e *Engine) levelUp(c *character.Character) (LevelUp, error) {
	conMod, err := c.Stats.Modifier(entity.CON)
	if err != nil {
		return LevelUp{}, err
	}

	c.Level++

	gain := e.src.Intn(hitDieSides) + 1 + conMod
	if gain < 1 {
		gain = 1
	}
	c.MaxHP += gain
	c.HP = c.MaxHP

	c.MaxSlots = e.slots.SlotsFor(c.Level)
	c.Slots = e.slots.SlotsFor(c.Level)

	up := LevelUp{Level: c.Level, HPGain: gain}
	if c.Level%4 == 0 {
		abilities := entity.Abilities()
		up.ImprovedAbility = abilities[e.src.Intn(len(abilities))]
		c.Stats.AddBonus(up.ImprovedAbility, 1)
	}

	e.logger.Info("level up",
		zap.String("character", c.Name),
		zap.Int("level", c.Level),
		zap.Int("hp_gain", gain),
		zap.Int("max_hp", c.MaxHP),
	)
	return up, nil
}

// Rest restores the character to full: hit points back to MaxHP and slot
// pools back to capacity. Rest has no cost and no cooldown.
//
// Postcondition: c.HP == c.MaxHP and c.Slots equals c.MaxSlots.
func (e *Engine) Rest(c *character.Character) {
	c.HP = c.MaxHP
	c.Slots = make(map[int]int, len(c.MaxSlots))
	for level, count := range c.MaxSlots {
		c.Slots[level] = count
	}
	e.logger.Debug("rest", zap.String("character", c.Name), zap.Int("hp", c.HP))
}
