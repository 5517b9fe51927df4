package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/progression"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
)

// FormatModifier renders an ability modifier with an explicit sign: "+2",
// "-1", "+0".
func FormatModifier(mod int) string {
	return fmt.Sprintf("%+d", mod)
}

// RenderCharacterSheet formats a full character sheet as colored text.
//
// Precondition: c must be non-nil with rolled stats.
func RenderCharacterSheet(c *character.Character) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(Colorf(BrightYellow, "%s", c.Name))
	if c.RaceName != "" {
		b.WriteString(Colorf(Yellow, " the %s", c.RaceName))
	}
	b.WriteString("\n")
	b.WriteString(Colorf(Cyan, "Level %d  XP %d  HP %d/%d  AC %d", c.Level, c.XP, c.HP, c.MaxHP, c.ArmorClass))
	b.WriteString("\n")

	for _, a := range entity.Abilities() {
		score, err := c.Stats.Score(a)
		if err != nil {
			continue
		}
		mod, _ := c.Stats.Modifier(a)
		b.WriteString(fmt.Sprintf("  %-3s %2d (%s)\n", a, score, FormatModifier(mod)))
	}

	if c.Weapon != nil {
		b.WriteString(Colorf(Green, "Weapon: %s", c.Weapon.String()))
	} else {
		b.WriteString(Colorize(Dim, "Weapon: none (unarmed)"))
	}
	b.WriteString("\n")

	if spells := c.KnownSpells(); len(spells) > 0 {
		b.WriteString(Colorize(Magenta, "Spells:"))
		b.WriteString("\n")
		for _, s := range spells {
			b.WriteString(fmt.Sprintf("  %s\n", s.String()))
		}
		b.WriteString(RenderSlots(c.Slots, c.MaxSlots))
	}

	return b.String()
}

// RenderSlots formats remaining spell slots per spell level, lowest level
// first. Levels absent from max are skipped; an empty table renders nothing.
func RenderSlots(slots, max map[int]int) string {
	if len(max) == 0 {
		return ""
	}
	levels := make([]int, 0, len(max))
	for l := range max {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("L%d %d/%d", l, slots[l], max[l]))
	}
	return Colorf(Magenta, "Slots: %s", strings.Join(parts, "  ")) + "\n"
}

// RenderRaceBonuses formats a race's ability bonuses in canonical ability
// order, e.g. "STR+2, CON+1, INT-1". Races without bonuses render "no bonuses".
func RenderRaceBonuses(r *ruleset.Race) string {
	if r == nil || len(r.Bonuses) == 0 {
		return "no bonuses"
	}
	parts := make([]string, 0, len(r.Bonuses))
	for _, a := range entity.Abilities() {
		if delta, ok := r.Bonuses[string(a)]; ok && delta != 0 {
			parts = append(parts, fmt.Sprintf("%s%s", a, FormatModifier(delta)))
		}
	}
	if len(parts) == 0 {
		return "no bonuses"
	}
	return strings.Join(parts, ", ")
}

// RenderInitiative formats an initiative contest result.
func RenderInitiative(init combat.Initiative) string {
	if len(init.Order) != 2 {
		return ""
	}
	return Colorf(Cyan, "Initiative: %s %d vs %s %d — %s acts first.",
		init.Order[0].Name, firstTotal(init),
		init.Order[1].Name, secondTotal(init),
		init.Order[0].Name)
}

func firstTotal(init combat.Initiative) int {
	if init.PlayerTotal >= init.EnemyTotal {
		return init.PlayerTotal
	}
	return init.EnemyTotal
}

func secondTotal(init combat.Initiative) int {
	if init.PlayerTotal >= init.EnemyTotal {
		return init.EnemyTotal
	}
	return init.PlayerTotal
}

// RenderAttack formats one attack resolution.
func RenderAttack(res combat.AttackResult) string {
	weapon := res.WeaponName
	if weapon == "" {
		weapon = "bare fists"
	}
	if !res.Hit {
		return Colorf(Dim, "%s attacks %s with %s: rolled %d (total %d) — miss.",
			res.AttackerName, res.DefenderName, weapon, res.AttackRoll, res.AttackTotal)
	}
	return Colorf(BrightRed, "%s hits %s with %s: rolled %d (total %d) for %d damage!",
		res.AttackerName, res.DefenderName, weapon, res.AttackRoll, res.AttackTotal, res.Damage)
}

// RenderSpellEffect formats a resolved spell cast. A negative-power spell
// heals the caster, but the resolved amount is always reported as damage to
// the target here; healing spells bottom out at zero.
func RenderSpellEffect(caster string, spell *magic.Spell, target string, amount int) string {
	if amount <= 0 {
		return Colorf(Dim, "%s casts %s at %s, but nothing happens.", caster, spell.Name, target)
	}
	return Colorf(Magenta, "%s casts %s at %s for %d damage!", caster, spell.Name, target, amount)
}

// RenderHealth formats an entity's remaining hit points.
func RenderHealth(e *entity.Entity) string {
	if !e.IsAlive() {
		return Colorf(Red, "%s is down!", e.Name)
	}
	return Colorf(Green, "%s: %d/%d HP", e.Name, e.HP, e.MaxHP)
}

// RenderLevelUp formats a single completed level transition.
func RenderLevelUp(lv progression.LevelUp) string {
	var b strings.Builder
	b.WriteString(Colorf(BrightGreen, "Level up! You are now level %d (+%d HP).", lv.Level, lv.HPGain))
	if lv.ImprovedAbility != "" {
		b.WriteString(Colorf(BrightGreen, " Your %s improves by 1.", lv.ImprovedAbility))
	}
	return b.String()
}
