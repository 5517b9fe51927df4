package magic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dndgame/internal/game/magic"
)

func writeYAML(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSpell_Validate(t *testing.T) {
	valid := &magic.Spell{ID: "fire_bolt", Name: "Fire Bolt", Level: 0, School: "evocation", Power: 5}
	assert.NoError(t, valid.Validate())

	healing := &magic.Spell{ID: "cure_wounds", Name: "Cure Wounds", Level: 1, School: "evocation", Power: -8}
	assert.NoError(t, healing.Validate(), "negative power marks healing intent and is legal")

	cases := []*magic.Spell{
		{Name: "No ID", Level: 1, School: "evocation"},
		{ID: "x", Level: 1, School: "evocation"},
		{ID: "x", Name: "X", Level: -1, School: "evocation"},
		{ID: "x", Name: "X", Level: magic.MaxSpellLevel + 1, School: "evocation"},
		{ID: "x", Name: "X", Level: 1},
	}
	for _, s := range cases {
		assert.Error(t, s.Validate(), "%+v must be invalid", s)
	}
}

func TestSpell_IsCantrip(t *testing.T) {
	assert.True(t, (&magic.Spell{Level: 0}).IsCantrip())
	assert.False(t, (&magic.Spell{Level: 1}).IsCantrip())
}

func TestSpell_String(t *testing.T) {
	cantrip := &magic.Spell{Name: "Fire Bolt", Level: 0, School: "evocation"}
	assert.Equal(t, "Fire Bolt (cantrip, evocation)", cantrip.String())

	leveled := &magic.Spell{Name: "Fireball", Level: 3, School: "evocation"}
	assert.Equal(t, "Fireball (level 3 evocation)", leveled.String())
}

func TestLoadSpells(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "magic_missile.yaml",
		"id: magic_missile\nname: Magic Missile\nlevel: 1\nschool: evocation\npower: 7\n")

	spells, err := magic.LoadSpells(dir)
	require.NoError(t, err)
	require.Len(t, spells, 1)
	assert.Equal(t, "Magic Missile", spells[0].Name)
	assert.Equal(t, 7, spells[0].Power)
}

func TestLoadSpells_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "bad.yaml", "id: bad\nname: Bad\nlevel: 9\nschool: evocation\n")
	_, err := magic.LoadSpells(dir)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := magic.NewRegistry()
	s := &magic.Spell{ID: "fireball", Name: "Fireball", Level: 3, School: "evocation", Power: 20}
	require.NoError(t, r.Register(s))
	assert.Error(t, r.Register(s))

	got, ok := r.Spell("fireball")
	require.True(t, ok)
	assert.Same(t, s, got, "registry must share the same spell reference")
}

func TestLoadRegistry_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "a.yaml", "id: fire_bolt\nname: Fire Bolt\nlevel: 0\nschool: evocation\npower: 5\n")
	writeYAML(t, dir, "b.yaml", "id: fireball\nname: Fireball\nlevel: 3\nschool: evocation\npower: 20\n")

	r, err := magic.LoadRegistry(dir)
	require.NoError(t, err)
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "fire_bolt", all[0].ID)
	assert.Equal(t, "fireball", all[1].ID)
}
