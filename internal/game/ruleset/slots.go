package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxSpellLevel is the highest spell level the slot progression models.
const MaxSpellLevel = 3

// SlotTable maps character level to the spell-slot capacity for each spell
// level 1..MaxSpellLevel. It is used both to grant slots on level-up and to
// display progression.
//
// Invariant after Validate: entries are contiguous for 1..MaxLevel and each
// spell level's count never decreases as character level increases.
type SlotTable struct {
	Levels map[int]map[int]int `yaml:"levels"`
}

// SlotsFor returns a copy of the slot capacities for the given character level.
// Unknown levels yield an empty map.
//
// Postcondition: The returned map is never nil and mutating it does not
// affect the table.
func (t *SlotTable) SlotsFor(level int) map[int]int {
	out := make(map[int]int, MaxSpellLevel)
	for spellLevel, count := range t.Levels[level] {
		out[spellLevel] = count
	}
	return out
}

// Validate checks the table invariants.
//
// Postcondition: nil return guarantees an entry for every character level
// 1..MaxLevel, spell levels within 1..MaxSpellLevel, non-negative counts, and
// per-spell-level monotonically non-decreasing counts.
func (t *SlotTable) Validate() error {
	for level := 1; level <= MaxLevel; level++ {
		if _, ok := t.Levels[level]; !ok {
			return fmt.Errorf("ruleset: slot table missing character level %d", level)
		}
	}
	for level, slots := range t.Levels {
		if level < 1 || level > MaxLevel {
			return fmt.Errorf("ruleset: slot table has out-of-range character level %d", level)
		}
		for spellLevel, count := range slots {
			if spellLevel < 1 || spellLevel > MaxSpellLevel {
				return fmt.Errorf("ruleset: slot table level %d has out-of-range spell level %d", level, spellLevel)
			}
			if count < 0 {
				return fmt.Errorf("ruleset: slot table level %d spell level %d has negative count %d", level, spellLevel, count)
			}
		}
	}
	for level := 2; level <= MaxLevel; level++ {
		for spellLevel := 1; spellLevel <= MaxSpellLevel; spellLevel++ {
			if t.Levels[level][spellLevel] < t.Levels[level-1][spellLevel] {
				return fmt.Errorf("ruleset: slot table spell level %d decreases at character level %d", spellLevel, level)
			}
		}
	}
	return nil
}

// LoadSlotTable reads and validates the spell-slot table at path.
//
// Postcondition: Returns a validated table or a non-nil error.
func LoadSlotTable(path string) (*SlotTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var t SlotTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing slot table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &t, nil
}
