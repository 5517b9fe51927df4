package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxLevel is the terminal character level; no thresholds exist beyond it.
const MaxLevel = 10

// ExperienceTable maps each level 1..MaxLevel to the cumulative experience
// required to reach it. Level 1 requires 0.
//
// Invariant after Validate: thresholds are contiguous for 1..MaxLevel and
// strictly increasing.
type ExperienceTable struct {
	Levels map[int]int `yaml:"levels"`
}

// Threshold returns the cumulative XP required to reach level.
//
// Postcondition: ok is true iff level is within 1..MaxLevel.
func (t *ExperienceTable) Threshold(level int) (int, bool) {
	xp, ok := t.Levels[level]
	return xp, ok
}

// Validate checks the table invariants.
//
// Postcondition: nil return guarantees an entry for every level 1..MaxLevel,
// Levels[1] == 0, and strictly increasing thresholds.
func (t *ExperienceTable) Validate() error {
	for level := 1; level <= MaxLevel; level++ {
		if _, ok := t.Levels[level]; !ok {
			return fmt.Errorf("ruleset: experience table missing level %d", level)
		}
	}
	if t.Levels[1] != 0 {
		return fmt.Errorf("ruleset: experience table level 1 must require 0 XP, got %d", t.Levels[1])
	}
	for level := 2; level <= MaxLevel; level++ {
		if t.Levels[level] <= t.Levels[level-1] {
			return fmt.Errorf("ruleset: experience table not strictly increasing at level %d (%d <= %d)",
				level, t.Levels[level], t.Levels[level-1])
		}
	}
	for level := range t.Levels {
		if level < 1 || level > MaxLevel {
			return fmt.Errorf("ruleset: experience table has out-of-range level %d", level)
		}
	}
	return nil
}

// LoadExperienceTable reads and validates the experience table at path.
//
// Postcondition: Returns a validated table or a non-nil error.
func LoadExperienceTable(path string) (*ExperienceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var t ExperienceTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing experience table %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &t, nil
}
