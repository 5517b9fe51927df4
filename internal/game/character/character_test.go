package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
)

// fixedSrc always returns min(v, n-1).
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func testSlotTable() *ruleset.SlotTable {
	return &ruleset.SlotTable{Levels: map[int]map[int]int{
		1:  {1: 2},
		2:  {1: 3},
		3:  {1: 4, 2: 2},
		4:  {1: 4, 2: 3},
		5:  {1: 4, 2: 3, 3: 2},
		6:  {1: 4, 2: 3, 3: 3},
		7:  {1: 4, 2: 3, 3: 3},
		8:  {1: 4, 2: 3, 3: 3},
		9:  {1: 4, 2: 3, 3: 3},
		10: {1: 4, 2: 3, 3: 3},
	}}
}

func buildWithStats(t *testing.T, race *ruleset.Race, allTen bool) *character.Character {
	t.Helper()
	c, err := character.Build("Hero", race, 10, testSlotTable())
	require.NoError(t, err)
	if allTen {
		require.NoError(t, c.Stats.SetScores(map[entity.Ability]int{
			entity.STR: 10, entity.DEX: 10, entity.CON: 10,
			entity.INT: 10, entity.WIS: 10, entity.CHA: 10,
		}))
		c.MaxHP = 10
		c.HP = 10
	}
	return c
}

func score(t *testing.T, c *character.Character, a entity.Ability) int {
	t.Helper()
	v, err := c.Stats.Score(a)
	require.NoError(t, err)
	return v
}

func TestBuild_Validation(t *testing.T) {
	_, err := character.Build("", nil, 10, testSlotTable())
	assert.Error(t, err, "empty name must be rejected")

	_, err = character.Build("Hero", nil, 0, testSlotTable())
	assert.Error(t, err, "non-positive base hp must be rejected")

	_, err = character.Build("Hero", nil, 10, nil)
	assert.Error(t, err, "nil slot table must be rejected")
}

func TestBuild_LevelOneDefaults(t *testing.T) {
	c, err := character.Build("Hero", nil, 10, testSlotTable())
	require.NoError(t, err)

	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 0, c.XP)
	assert.Equal(t, entity.DefaultArmorClass, c.ArmorClass)
	assert.Equal(t, map[int]int{1: 2}, c.Slots)
	assert.Equal(t, map[int]int{1: 2}, c.MaxSlots)
	assert.Empty(t, c.KnownSpells())
	assert.False(t, c.Stats.Rolled())
}

func TestRollStats_DerivesHP(t *testing.T) {
	c, err := character.Build("Hero", nil, 10, testSlotTable())
	require.NoError(t, err)

	// Every Intn(6) returns 4 → each die is 5 → every score is 15 (mod +2).
	require.NoError(t, c.RollStats(fixedSrc{v: 4}))

	require.True(t, c.Stats.Rolled())
	assert.Equal(t, 12, c.MaxHP, "max hp = base 10 + CON modifier +2")
	assert.Equal(t, c.MaxHP, c.HP)
}

// TestRollStats_Range pins 3 <= score <= 18 for every ability over arbitrary
// source behavior.
func TestRollStats_Range(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(0, 5).Draw(rt, "v")
		c, err := character.Build("Hero", nil, 10, testSlotTable())
		require.NoError(rt, err)
		require.NoError(rt, c.RollStats(fixedSrc{v: v}))

		for _, a := range entity.Abilities() {
			s, err := c.Stats.Score(a)
			require.NoError(rt, err)
			assert.GreaterOrEqual(rt, s, 3)
			assert.LessOrEqual(rt, s, 18)
		}
	})
}

func TestApplyRacialBonuses_Human(t *testing.T) {
	human := &ruleset.Race{ID: "human", Name: "Human", Bonuses: map[string]int{
		"STR": 1, "DEX": 1, "CON": 1, "INT": 1, "WIS": 1, "CHA": 1,
	}}
	c := buildWithStats(t, human, true)
	c.ApplyRacialBonuses()

	for _, a := range entity.Abilities() {
		assert.Equal(t, 11, score(t, c, a), "human bonus must raise %s to 11", a)
	}
}

func TestApplyRacialBonuses_Elf(t *testing.T) {
	elf := &ruleset.Race{ID: "elf", Name: "Elf", Bonuses: map[string]int{"DEX": 2}}
	c := buildWithStats(t, elf, true)
	c.ApplyRacialBonuses()

	assert.Equal(t, 12, score(t, c, entity.DEX))
	for _, a := range []entity.Ability{entity.STR, entity.CON, entity.INT, entity.WIS, entity.CHA} {
		assert.Equal(t, 10, score(t, c, a), "%s must be untouched", a)
	}
}

func TestApplyRacialBonuses_OrcCanLowerScores(t *testing.T) {
	orc := &ruleset.Race{ID: "orc", Name: "Orc", Bonuses: map[string]int{
		"STR": 2, "CON": 1, "INT": -1,
	}}
	c := buildWithStats(t, orc, true)
	c.ApplyRacialBonuses()

	assert.Equal(t, 12, score(t, c, entity.STR))
	assert.Equal(t, 11, score(t, c, entity.CON))
	assert.Equal(t, 9, score(t, c, entity.INT), "negative bonuses go below 10")
}

func TestApplyRacialBonuses_NoRaceIsNoop(t *testing.T) {
	c := buildWithStats(t, nil, true)
	c.ApplyRacialBonuses()
	for _, a := range entity.Abilities() {
		assert.Equal(t, 10, score(t, c, a))
	}
}

func TestApplyRacialBonuses_TwiceDoubleApplies(t *testing.T) {
	elf := &ruleset.Race{ID: "elf", Name: "Elf", Bonuses: map[string]int{"DEX": 2}}
	c := buildWithStats(t, elf, true)
	c.ApplyRacialBonuses()
	c.ApplyRacialBonuses()
	assert.Equal(t, 14, score(t, c, entity.DEX), "second application stacks; callers apply once")
}

func TestLearnSpell_RejectsDuplicates(t *testing.T) {
	c := buildWithStats(t, nil, true)
	fireBolt := &magic.Spell{ID: "fire_bolt", Name: "Fire Bolt", Level: 0, School: "evocation", Power: 5}

	require.NoError(t, c.LearnSpell(fireBolt))
	assert.True(t, c.Knows(fireBolt))
	assert.Error(t, c.LearnSpell(fireBolt), "known spells must stay distinct")
	assert.Len(t, c.KnownSpells(), 1)
}

func TestKnownSpells_OrderAndCopy(t *testing.T) {
	c := buildWithStats(t, nil, true)
	first := &magic.Spell{ID: "a", Name: "A", Level: 0, School: "evocation"}
	second := &magic.Spell{ID: "b", Name: "B", Level: 1, School: "evocation"}
	require.NoError(t, c.LearnSpell(first))
	require.NoError(t, c.LearnSpell(second))

	known := c.KnownSpells()
	require.Len(t, known, 2)
	assert.Same(t, first, known[0], "learn order must be preserved")
	assert.Same(t, second, known[1])

	known[0] = nil
	assert.Same(t, first, c.KnownSpells()[0], "returned slice must be a copy")
}
