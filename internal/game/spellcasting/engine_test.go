package spellcasting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
	"github.com/cory-johannsen/dndgame/internal/game/spellcasting"
)

var (
	fireBolt     = &magic.Spell{ID: "fire_bolt", Name: "Fire Bolt", Level: 0, School: "evocation", Power: 5}
	magicMissile = &magic.Spell{ID: "magic_missile", Name: "Magic Missile", Level: 1, School: "evocation", Power: 7}
	cureWounds   = &magic.Spell{ID: "cure_wounds", Name: "Cure Wounds", Level: 1, School: "evocation", Power: -8}
	fireball     = &magic.Spell{ID: "fireball", Name: "Fireball", Level: 3, School: "evocation", Power: 20}
)

func slotTable() *ruleset.SlotTable {
	return &ruleset.SlotTable{Levels: map[int]map[int]int{
		1: {1: 2}, 2: {1: 3}, 3: {1: 4, 2: 2}, 4: {1: 4, 2: 3},
		5: {1: 4, 2: 3, 3: 2}, 6: {1: 4, 2: 3, 3: 3}, 7: {1: 4, 2: 3, 3: 3},
		8: {1: 4, 2: 3, 3: 3}, 9: {1: 4, 2: 3, 3: 3}, 10: {1: 4, 2: 3, 3: 3},
	}}
}

// makeCaster builds a level-1 caster with the given INT score and 2 level-1 slots.
func makeCaster(t *testing.T, intScore int) *character.Character {
	t.Helper()
	c, err := character.Build("Mage", nil, 10, slotTable())
	require.NoError(t, err)
	require.NoError(t, c.Stats.SetScores(map[entity.Ability]int{
		entity.STR: 10, entity.DEX: 10, entity.CON: 10,
		entity.INT: intScore, entity.WIS: 10, entity.CHA: 10,
	}))
	c.MaxHP = 10
	c.HP = 10
	return c
}

func makeTarget(hp int) *entity.Entity {
	e := entity.New("Goblin")
	e.MaxHP = hp
	e.HP = hp
	return &e
}

func TestCanCast(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	require.NoError(t, c.LearnSpell(fireBolt))
	require.NoError(t, c.LearnSpell(magicMissile))

	assert.True(t, engine.CanCast(c, fireBolt), "known cantrip is always castable")
	assert.True(t, engine.CanCast(c, magicMissile), "slots remain at level 1")
	assert.False(t, engine.CanCast(c, fireball), "unknown spells are not castable")

	c.Slots[1] = 0
	assert.False(t, engine.CanCast(c, magicMissile), "empty pool blocks the cast")
	assert.True(t, engine.CanCast(c, fireBolt), "cantrips ignore slot pools")
}

func TestCanCast_MissingSlotLevelTreatedAsZero(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	require.NoError(t, c.LearnSpell(fireball)) // level 3; level-1 table has no slots for it

	assert.False(t, engine.CanCast(c, fireball))
}

func TestCast_UnknownSpellFailsWithoutSideEffects(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	target := makeTarget(10)

	_, err := engine.Cast(c, magicMissile, target)
	require.ErrorIs(t, err, spellcasting.ErrCannotCast)
	assert.Equal(t, 2, c.Slots[1], "a failed cast never consumes a slot")
	assert.Equal(t, 10, target.HP)
}

func TestCast_CantripNeverConsumesSlots(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	require.NoError(t, c.LearnSpell(fireBolt))
	target := makeTarget(100)

	for i := 0; i < 5; i++ {
		dmg, err := engine.Cast(c, fireBolt, target)
		require.NoError(t, err)
		assert.Equal(t, 7, dmg, "power 5 + INT modifier +2")
	}
	assert.Equal(t, 2, c.Slots[1], "repeated cantrips leave every pool untouched")
	assert.Equal(t, 65, target.HP)
}

func TestCast_DecrementsExactlyOneSlotAndExhausts(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	require.NoError(t, c.LearnSpell(magicMissile))
	target := makeTarget(100)

	dmg, err := engine.Cast(c, magicMissile, target)
	require.NoError(t, err)
	assert.Equal(t, 9, dmg)
	assert.Equal(t, 1, c.Slots[1])

	_, err = engine.Cast(c, magicMissile, target)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Slots[1])

	_, err = engine.Cast(c, magicMissile, target)
	assert.ErrorIs(t, err, spellcasting.ErrCannotCast, "cast fails once slots reach 0")
	assert.Equal(t, 0, c.Slots[1])
}

func TestCast_DamageClampedAtZero(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14) // INT mod +2
	require.NoError(t, c.LearnSpell(cureWounds))
	target := makeTarget(10)

	// Power -8 + modifier +2 = -6 → clamped to 0: the spell does nothing
	// rather than heal.
	dmg, err := engine.Cast(c, cureWounds, target)
	require.NoError(t, err)
	assert.Equal(t, 0, dmg)
	assert.Equal(t, 10, target.HP)
	assert.Equal(t, 1, c.Slots[1], "the slot is still consumed")
}

func TestCast_TargetHPFloorsAtZero(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 18) // INT mod +4
	require.NoError(t, c.LearnSpell(magicMissile))
	target := makeTarget(5)

	dmg, err := engine.Cast(c, magicMissile, target)
	require.NoError(t, err)
	assert.Equal(t, 11, dmg)
	assert.Equal(t, 0, target.HP)
	assert.False(t, target.IsAlive())
}

func TestCast_NegativeINTModifierReducesDamage(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 6) // INT mod -2
	require.NoError(t, c.LearnSpell(magicMissile))
	target := makeTarget(10)

	dmg, err := engine.Cast(c, magicMissile, target)
	require.NoError(t, err)
	assert.Equal(t, 5, dmg)
	assert.Equal(t, 5, target.HP)
}

func TestAvailableSpells_FiltersAndPreservesOrder(t *testing.T) {
	engine := spellcasting.NewEngine(zap.NewNop())
	c := makeCaster(t, 14)
	require.NoError(t, c.LearnSpell(magicMissile))
	require.NoError(t, c.LearnSpell(fireBolt))
	require.NoError(t, c.LearnSpell(fireball))

	available := engine.AvailableSpells(c)
	require.Len(t, available, 2, "fireball has no level-3 slots at level 1")
	assert.Same(t, magicMissile, available[0], "learn order preserved")
	assert.Same(t, fireBolt, available[1])

	c.Slots[1] = 0
	available = engine.AvailableSpells(c)
	require.Len(t, available, 1)
	assert.Same(t, fireBolt, available[0])
}
