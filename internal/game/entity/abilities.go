// Package entity defines the stat-block and entity domain model shared by
// player characters and monsters.
package entity

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dndgame/internal/game/dice"
)

// Ability identifies one of the six canonical ability scores.
type Ability string

const (
	STR Ability = "STR"
	DEX Ability = "DEX"
	CON Ability = "CON"
	INT Ability = "INT"
	WIS Ability = "WIS"
	CHA Ability = "CHA"
)

// Abilities returns the six canonical abilities in display order.
func Abilities() []Ability {
	return []Ability{STR, DEX, CON, INT, WIS, CHA}
}

// ParseAbility converts a string key into an Ability.
//
// Postcondition: Returns the Ability and true iff s is one of the six
// canonical identifiers.
func ParseAbility(s string) (Ability, bool) {
	switch Ability(s) {
	case STR, DEX, CON, INT, WIS, CHA:
		return Ability(s), true
	}
	return "", false
}

var (
	// ErrUnknownAbility signals a lookup with a non-canonical ability identifier.
	ErrUnknownAbility = errors.New("entity: unknown ability")
	// ErrStatsNotRolled signals a score or modifier read before RollScores.
	ErrStatsNotRolled = errors.New("entity: stats not rolled")
)

// Modifier computes the standard ability modifier using floor division:
// floor((score - 10) / 2). Negative differences round toward negative
// infinity, so a score of 8 yields -1 and a score of 3 yields -4.
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// StatBlock holds the six ability scores of an entity.
//
// Invariant: either no scores are assigned (unrolled) or all six are.
type StatBlock struct {
	scores map[Ability]int
}

// Rolled reports whether the scores have been assigned.
func (s *StatBlock) Rolled() bool { return s.scores != nil }

// Score returns the raw score for the given ability.
//
// Postcondition: Returns ErrStatsNotRolled before RollScores/SetScores, or
// ErrUnknownAbility for a non-canonical identifier.
func (s *StatBlock) Score(a Ability) (int, error) {
	if s.scores == nil {
		return 0, fmt.Errorf("%w: reading %s", ErrStatsNotRolled, a)
	}
	v, ok := s.scores[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAbility, a)
	}
	return v, nil
}

// Modifier returns floor((score - 10) / 2) for the given ability.
//
// Postcondition: same error contract as Score.
func (s *StatBlock) Modifier(a Ability) (int, error) {
	v, err := s.Score(a)
	if err != nil {
		return 0, err
	}
	return Modifier(v), nil
}

// RollScores assigns all six abilities from 3d6 rolls in one atomic operation:
// the block is never observable with only some scores set.
//
// Precondition: src must be non-nil.
// Postcondition: Rolled() is true and every score is in [3, 18].
func (s *StatBlock) RollScores(src dice.Source) {
	scores := make(map[Ability]int, 6)
	for _, a := range Abilities() {
		scores[a] = dice.RollTotal(3, 6, src)
	}
	s.scores = scores
}

// SetScores assigns an explicit value for every canonical ability.
// Used for fully-formed monsters and tests.
//
// Precondition: values must contain exactly the six canonical abilities.
// Postcondition: Rolled() is true, or an error and no mutation.
func (s *StatBlock) SetScores(values map[Ability]int) error {
	scores := make(map[Ability]int, 6)
	for _, a := range Abilities() {
		v, ok := values[a]
		if !ok {
			return fmt.Errorf("entity: SetScores missing ability %s", a)
		}
		scores[a] = v
	}
	if len(values) != 6 {
		return fmt.Errorf("entity: SetScores expects exactly 6 abilities, got %d", len(values))
	}
	s.scores = scores
	return nil
}

// AddBonus adds delta to the given ability if it is present. Unrolled blocks
// and non-canonical identifiers are ignored, mirroring the racial-bonus
// application rules.
func (s *StatBlock) AddBonus(a Ability, delta int) {
	if s.scores == nil {
		return
	}
	if _, ok := s.scores[a]; ok {
		s.scores[a] += delta
	}
}
