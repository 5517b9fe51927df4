// Package combat implements initiative and attack resolution for one
// encounter between a player-side entity and an enemy.
package combat

import (
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// Encounter holds the live state of a single combat between two entities.
// It is not safe for concurrent use; each simulated encounter owns its own
// Encounter and entities.
type Encounter struct {
	// Player is the player-side entity; it wins initiative ties.
	Player *entity.Entity
	// Enemy is the opposing entity.
	Enemy *entity.Entity
	// Round is the current round number. The turn driver owns the increment;
	// attack calls never advance it.
	Round int

	src   dice.Source
	order []*entity.Entity
}

// NewEncounter creates an Encounter between player and enemy rolling with src.
//
// Precondition: player, enemy, and src must be non-nil.
// Postcondition: Round is 0 and no initiative order is set.
func NewEncounter(player, enemy *entity.Entity, src dice.Source) *Encounter {
	return &Encounter{Player: player, Enemy: enemy, src: src}
}

// Initiative holds the outcome of an initiative contest.
type Initiative struct {
	// Order lists both entities, first actor first.
	Order []*entity.Entity
	// PlayerTotal and EnemyTotal are the d20 + DEX modifier totals.
	PlayerTotal int
	EnemyTotal  int
}

// RollInitiative rolls d20 + DEX modifier for each side and stores the
// resulting order. The player side acts first on ties. Re-rolling replaces
// any previously stored order.
//
// Postcondition: Order() returns the same two entities as the result, or a
// lookup error is returned and the stored order is unchanged.
func (e *Encounter) RollInitiative() (Initiative, error) {
	playerDex, err := e.Player.Stats.Modifier(entity.DEX)
	if err != nil {
		return Initiative{}, err
	}
	enemyDex, err := e.Enemy.Stats.Modifier(entity.DEX)
	if err != nil {
		return Initiative{}, err
	}

	result := Initiative{
		PlayerTotal: dice.D20(e.src) + playerDex,
		EnemyTotal:  dice.D20(e.src) + enemyDex,
	}
	if result.PlayerTotal >= result.EnemyTotal {
		result.Order = []*entity.Entity{e.Player, e.Enemy}
	} else {
		result.Order = []*entity.Entity{e.Enemy, e.Player}
	}
	e.order = result.Order
	return result, nil
}

// Order returns the stored initiative order, or nil before RollInitiative.
func (e *Encounter) Order() []*entity.Entity {
	if e.order == nil {
		return nil
	}
	out := make([]*entity.Entity, len(e.order))
	copy(out, e.order)
	return out
}
