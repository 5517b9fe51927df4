// Package narrator turns structured combat events into prose through an
// external text-generation service. Narration is strictly best-effort: the
// game never depends on it for correctness, and every failure degrades to
// "no narration".
package narrator

import (
	"context"
	"fmt"
	"strings"
)

// Kind identifies the type of game event being narrated.
type Kind int

const (
	// KindEncounterStart announces a new enemy.
	KindEncounterStart Kind = iota
	// KindAttack covers a weapon attack, hit or miss.
	KindAttack
	// KindSpellCast covers a resolved spell, damaging or healing.
	KindSpellCast
	// KindVictory marks the enemy's defeat.
	KindVictory
	// KindDefeat marks the player's defeat.
	KindDefeat
	// KindLevelUp marks a completed level transition.
	KindLevelUp
)

// Event is the structured descriptor handed to a Narrator. Only the fields
// relevant to the Kind need to be set.
type Event struct {
	Kind   Kind
	Actor  string // attacker, caster, or the character the event is about
	Target string // defender or spell target
	Weapon string // weapon name for attacks; empty when unarmed
	Spell  string // spell name for casts
	Amount int    // damage dealt or healing applied
	Hit    bool   // attack landed
	Level  int    // level reached, for KindLevelUp
}

// Narrator produces narrative text for game events.
type Narrator interface {
	// Narrate returns prose for the event and true, or "" and false when no
	// narration is available. Implementations must never let a service
	// failure escape to the caller.
	Narrate(ctx context.Context, ev Event) (string, bool)
}

// Disabled is a Narrator that never narrates. Used when no text-generation
// service is configured.
type Disabled struct{}

// Narrate always reports no narration.
func (Disabled) Narrate(context.Context, Event) (string, bool) { return "", false }

// Prompt renders the instruction sent to the text-generation service for ev.
//
// Postcondition: Returns a non-empty prompt for every Kind.
func Prompt(ev Event) string {
	var b strings.Builder
	b.WriteString("You are a Dungeon Master narrating a tabletop RPG. ")

	switch ev.Kind {
	case KindEncounterStart:
		fmt.Fprintf(&b, "%s has just encountered a %s. Describe the start of the encounter in 2-3 vivid sentences.",
			ev.Actor, ev.Target)
	case KindAttack:
		weapon := ev.Weapon
		if weapon == "" {
			weapon = "bare fists"
		}
		if ev.Hit {
			fmt.Fprintf(&b, "%s attacked %s with %s and dealt %d damage. Describe the blow landing in 1-2 vivid sentences.",
				ev.Actor, ev.Target, weapon, ev.Amount)
		} else {
			fmt.Fprintf(&b, "%s attacked %s with %s but missed. Describe the failed attack in 1-2 vivid sentences.",
				ev.Actor, ev.Target, weapon)
		}
	case KindSpellCast:
		if ev.Amount > 0 {
			fmt.Fprintf(&b, "%s cast %s at %s for %d damage. Describe the spell's effect in 1-2 vivid sentences.",
				ev.Actor, ev.Spell, ev.Target, ev.Amount)
		} else {
			fmt.Fprintf(&b, "%s cast %s at %s, but the magic fizzled harmlessly. Describe it in 1-2 sentences.",
				ev.Actor, ev.Spell, ev.Target)
		}
	case KindVictory:
		fmt.Fprintf(&b, "%s has defeated the %s. Describe the moment of victory in 1-2 sentences.",
			ev.Actor, ev.Target)
	case KindDefeat:
		fmt.Fprintf(&b, "%s has fallen in battle against the %s. Describe the defeat in 1-2 somber sentences.",
			ev.Actor, ev.Target)
	case KindLevelUp:
		fmt.Fprintf(&b, "%s has grown stronger and reached level %d. Describe the surge of power in 1-2 sentences.",
			ev.Actor, ev.Level)
	default:
		fmt.Fprintf(&b, "Narrate this moment involving %s in 1-2 sentences.", ev.Actor)
	}

	b.WriteString(" Keep it concise and do not mention game mechanics.")
	return b.String()
}
