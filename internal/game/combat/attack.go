package combat

import (
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// UnarmedDamage is the flat damage of an entity fighting without a weapon.
// It is not a die roll.
const UnarmedDamage = 1

// AttackResult holds the outcome of a single attack.
type AttackResult struct {
	// AttackerName and DefenderName identify the participants for rendering
	// and narration.
	AttackerName string
	DefenderName string
	// WeaponName is the attacker's weapon, or empty when unarmed.
	WeaponName string
	// AttackRoll is the raw d20 result before modifiers.
	AttackRoll int
	// AttackTotal is d20 + the attacker's STR modifier.
	AttackTotal int
	// Hit is true when AttackTotal >= the defender's armor class.
	Hit bool
	// Damage is the rolled damage on a hit, 0 on a miss. It reports the roll
	// even when the defender's remaining hit points absorbed less.
	Damage int
	// DamageDice holds the individual damage die values; empty for unarmed.
	DamageDice []int
}

// Attack resolves one attack from attacker against defender: d20 + attacker
// STR modifier versus the defender's armor class, hitting on greater-or-equal.
// On a hit the attacker's weapon dice are rolled (flat UnarmedDamage with no
// weapon) and the defender's hit points are reduced, clamped at a floor of 0.
// There are no critical hits or fumbles.
//
// The call is atomic: it either returns a lookup error with no state change,
// or applies its full effect exactly once.
//
// Precondition: attacker and defender must be non-nil with rolled stats.
// Postcondition: defender.HP == max(0, previous HP - result.Damage).
func (e *Encounter) Attack(attacker, defender *entity.Entity) (AttackResult, error) {
	strMod, err := attacker.Stats.Modifier(entity.STR)
	if err != nil {
		return AttackResult{}, err
	}

	result := AttackResult{
		AttackerName: attacker.Name,
		DefenderName: defender.Name,
		AttackRoll:   dice.D20(e.src),
	}
	if attacker.Weapon != nil {
		result.WeaponName = attacker.Weapon.Name
	}
	result.AttackTotal = result.AttackRoll + strMod

	if result.AttackTotal < defender.ArmorClass {
		return result, nil
	}
	result.Hit = true

	if attacker.Weapon == nil {
		result.Damage = UnarmedDamage
	} else {
		result.DamageDice = dice.RollDice(attacker.Weapon.DamageDiceCount, attacker.Weapon.DamageDie, e.src)
		for _, d := range result.DamageDice {
			result.Damage += d
		}
	}

	defender.HP -= result.Damage
	if defender.HP < 0 {
		defender.HP = 0
	}
	return result, nil
}
