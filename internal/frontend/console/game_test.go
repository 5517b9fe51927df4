package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/bestiary"
	"github.com/cory-johannsen/dndgame/internal/game/equipment"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/progression"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
	"github.com/cory-johannsen/dndgame/internal/game/spellcasting"
	"github.com/cory-johannsen/dndgame/internal/narrator"
)

// fixedSrc always returns min(v, n-1).
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func testTables() (*ruleset.ExperienceTable, *ruleset.SlotTable) {
	xp := &ruleset.ExperienceTable{Levels: map[int]int{
		1: 0, 2: 300, 3: 900, 4: 2700, 5: 6500,
		6: 14000, 7: 23000, 8: 34000, 9: 48000, 10: 64000,
	}}
	slots := &ruleset.SlotTable{Levels: map[int]map[int]int{
		1: {1: 2}, 2: {1: 3}, 3: {1: 4, 2: 2}, 4: {1: 4, 2: 3}, 5: {1: 4, 2: 3, 3: 2},
		6: {1: 4, 2: 3, 3: 3}, 7: {1: 4, 2: 3, 3: 3}, 8: {1: 4, 2: 3, 3: 3},
		9: {1: 4, 2: 3, 3: 3}, 10: {1: 4, 2: 3, 3: 3},
	}}
	return xp, slots
}

func testGame(t *testing.T, input string) (*Game, *bytes.Buffer) {
	t.Helper()

	races := ruleset.NewRaceRegistry()
	require.NoError(t, races.Register(&ruleset.Race{
		ID: "human", Name: "Human", Description: "Adaptable",
		Bonuses: map[string]int{"STR": 1, "DEX": 1, "CON": 1, "INT": 1, "WIS": 1, "CHA": 1},
	}))

	xp, slotTable := testTables()
	src := fixedSrc{v: 3}
	logger := zap.NewNop()

	out := &bytes.Buffer{}
	g := NewGame(Deps{
		In:          strings.NewReader(input),
		Out:         out,
		Races:       races,
		Weapons:     equipment.NewRegistry(),
		Spells:      magic.NewRegistry(),
		Monsters:    bestiary.NewRegistry(),
		SlotTable:   slotTable,
		BaseHP:      10,
		Progression: progression.NewEngine(xp, slotTable, src, logger),
		Casting:     spellcasting.NewEngine(logger),
		Narrator:    narrator.Disabled{},
		Src:         src,
		Logger:      logger,
	})
	return g, out
}

func TestIsRandomInput(t *testing.T) {
	assert.True(t, IsRandomInput(""))
	assert.True(t, IsRandomInput("  "))
	assert.True(t, IsRandomInput("r"))
	assert.True(t, IsRandomInput("Random"))
	assert.False(t, IsRandomInput("1"))
	assert.False(t, IsRandomInput("human"))
}

func TestPickFromList(t *testing.T) {
	items := []string{"Dagger", "Longsword", "Mace"}
	ident := func(s string) string { return s }

	got, ok := pickFromList(items, "2", ident)
	assert.True(t, ok)
	assert.Equal(t, "Longsword", got)

	got, ok = pickFromList(items, "mace", ident)
	assert.True(t, ok)
	assert.Equal(t, "Mace", got)

	_, ok = pickFromList(items, "0", ident)
	assert.False(t, ok)

	_, ok = pickFromList(items, "4", ident)
	assert.False(t, ok)

	_, ok = pickFromList(items, "halberd", ident)
	assert.False(t, ok)
}

func TestRun_CreateSheetAndQuit(t *testing.T) {
	g, out := testGame(t, "Hero\n1\n2\nquit\n")

	err := g.Run(context.Background())
	require.NoError(t, err)

	plain := StripANSI(out.String())
	assert.Contains(t, plain, "Hero the Human")
	assert.Contains(t, plain, "Level 1")
	assert.Contains(t, plain, "Farewell")
}

func TestRun_FightWithNoMonsters(t *testing.T) {
	g, out := testGame(t, "Hero\n1\n1\nquit\n")

	err := g.Run(context.Background())
	require.NoError(t, err)

	plain := StripANSI(out.String())
	assert.Contains(t, plain, "Nothing to fight")
}

func TestRun_InputEndsDuringCreation(t *testing.T) {
	g, _ := testGame(t, "Hero\n")

	err := g.Run(context.Background())
	assert.NoError(t, err)
}

func TestRun_RestReportsRecovery(t *testing.T) {
	g, out := testGame(t, "Hero\n1\n3\nquit\n")

	err := g.Run(context.Background())
	require.NoError(t, err)

	plain := StripANSI(out.String())
	assert.Contains(t, plain, "recover fully")
}
