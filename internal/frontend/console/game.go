package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/game/bestiary"
	"github.com/cory-johannsen/dndgame/internal/game/character"
	"github.com/cory-johannsen/dndgame/internal/game/combat"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/equipment"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/progression"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
	"github.com/cory-johannsen/dndgame/internal/game/spellcasting"
	"github.com/cory-johannsen/dndgame/internal/narrator"
)

// IsRandomInput reports whether the player's input at a list step requests
// random selection. Blank input, "r", and "random" (all case-insensitive)
// are treated as random. Exported for testing.
func IsRandomInput(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return lower == "" || lower == "r" || lower == "random"
}

// Deps bundles everything the console game loop needs.
type Deps struct {
	In  io.Reader
	Out io.Writer

	Races    *ruleset.RaceRegistry
	Weapons  *equipment.Registry
	Spells   *magic.Registry
	Monsters *bestiary.Registry

	SlotTable *ruleset.SlotTable
	BaseHP    int

	Progression *progression.Engine
	Casting     *spellcasting.Engine
	Narrator    narrator.Narrator

	Src    dice.Source
	Logger *zap.Logger
}

// Game runs the interactive session: character creation, the camp menu, and
// encounters. It is single-player and single-goroutine.
type Game struct {
	in  *bufio.Scanner
	out io.Writer

	races    *ruleset.RaceRegistry
	weapons  *equipment.Registry
	spells   *magic.Registry
	monsters *bestiary.Registry

	slotTable *ruleset.SlotTable
	baseHP    int

	progression *progression.Engine
	casting     *spellcasting.Engine
	narrator    narrator.Narrator

	src    dice.Source
	logger *zap.Logger
}

// NewGame wires a Game from its dependencies.
//
// Precondition: every Deps field must be non-nil and BaseHP >= 1.
func NewGame(deps Deps) *Game {
	return &Game{
		in:          bufio.NewScanner(deps.In),
		out:         deps.Out,
		races:       deps.Races,
		weapons:     deps.Weapons,
		spells:      deps.Spells,
		monsters:    deps.Monsters,
		slotTable:   deps.SlotTable,
		baseHP:      deps.BaseHP,
		progression: deps.Progression,
		casting:     deps.Casting,
		narrator:    deps.Narrator,
		src:         deps.Src,
		logger:      deps.Logger,
	}
}

// Run drives the session until the player quits, dies, or input ends.
//
// Postcondition: Returns nil on a normal exit, or the first I/O error.
func (g *Game) Run(ctx context.Context) error {
	g.println(Colorize(BrightYellow, "Welcome, adventurer."))

	c, err := g.createCharacter()
	if err != nil {
		return err
	}
	if c == nil {
		return nil // input ended during creation
	}
	g.println(RenderCharacterSheet(c))

	for {
		g.println("")
		g.println(Colorize(BrightWhite, "You are at camp. What now?"))
		g.println("  1. Seek out a fight")
		g.println("  2. Check your character sheet")
		g.println("  3. Rest")
		g.println("  quit. Give up the adventure")

		choice, ok := g.prompt("> ")
		if !ok {
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "fight":
			alive, err := g.runEncounter(ctx, c)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil // input ended mid-encounter
				}
				return err
			}
			if !alive {
				g.println(Colorize(BrightRed, "\nYour adventure ends here."))
				return nil
			}
		case "2", "sheet":
			g.println(RenderCharacterSheet(c))
		case "3", "rest":
			g.progression.Rest(c)
			g.println(Colorize(Green, "You rest and recover fully."))
		case "quit", "q", "exit":
			g.println(Colorize(Dim, "Farewell."))
			return nil
		default:
			g.println(Colorize(Dim, "Pick 1, 2, 3, or quit."))
		}
	}
}

// createCharacter walks the player through name, race, weapon, and spell
// selection. Returns nil with no error when input ends mid-flow.
func (g *Game) createCharacter() (*character.Character, error) {
	var name string
	for name == "" {
		line, ok := g.prompt("Name your character: ")
		if !ok {
			return nil, nil
		}
		name = strings.TrimSpace(line)
	}

	race, ok := g.chooseRace()
	if !ok {
		return nil, nil
	}

	c, err := character.Build(name, race, g.baseHP, g.slotTable)
	if err != nil {
		return nil, fmt.Errorf("building character: %w", err)
	}
	if err := c.RollStats(g.src); err != nil {
		return nil, fmt.Errorf("rolling stats: %w", err)
	}
	c.ApplyRacialBonuses()

	if !g.chooseWeapon(c) {
		return nil, nil
	}
	if !g.chooseSpells(c) {
		return nil, nil
	}

	g.logger.Info("character created",
		zap.String("name", c.Name),
		zap.String("race", c.RaceName),
		zap.Int("max_hp", c.MaxHP))
	return c, nil
}

// chooseRace lists all races and reads a selection. Blank or "random" picks
// one at random. Returns false when input ends.
func (g *Game) chooseRace() (*ruleset.Race, bool) {
	races := g.races.All()
	if len(races) == 0 {
		g.println(Colorize(Dim, "No races are known; you are an unremarkable wanderer."))
		return nil, true
	}

	for {
		g.println(Colorize(BrightWhite, "\nChoose a race (blank for random):"))
		for i, r := range races {
			g.println(fmt.Sprintf("  %s. %s (%s) %s",
				Colorf(Green, "%d", i+1), r.Name, RenderRaceBonuses(r), Colorize(Dim, r.Description)))
		}
		line, ok := g.prompt("> ")
		if !ok {
			return nil, false
		}
		if IsRandomInput(line) {
			return races[g.src.Intn(len(races))], true
		}
		if r, found := pickFromList(races, line, func(r *ruleset.Race) string { return r.Name }); found {
			return r, true
		}
		g.println(Colorize(Dim, "Pick a number from the list."))
	}
}

// chooseWeapon lists all weapons and equips the selection. "none" leaves the
// character unarmed. Returns false when input ends.
func (g *Game) chooseWeapon(c *character.Character) bool {
	weapons := g.weapons.All()
	if len(weapons) == 0 {
		g.println(Colorize(Dim, "The armory is empty; you will fight unarmed."))
		return true
	}

	for {
		g.println(Colorize(BrightWhite, "\nChoose a weapon (blank for random, \"none\" to go unarmed):"))
		for i, w := range weapons {
			g.println(fmt.Sprintf("  %s. %s", Colorf(Green, "%d", i+1), w.String()))
		}
		line, ok := g.prompt("> ")
		if !ok {
			return false
		}
		if strings.EqualFold(strings.TrimSpace(line), "none") {
			c.Weapon = nil
			return true
		}
		if IsRandomInput(line) {
			c.Weapon = weapons[g.src.Intn(len(weapons))]
			return true
		}
		if w, found := pickFromList(weapons, line, func(w *equipment.Weapon) string { return w.Name }); found {
			c.Weapon = w
			return true
		}
		g.println(Colorize(Dim, "Pick a number from the list."))
	}
}

// chooseSpells lets the player learn spells they could cast at level 1:
// cantrips plus any level with a starting slot. Blank finishes the step.
// Returns false when input ends.
func (g *Game) chooseSpells(c *character.Character) bool {
	var learnable []*magic.Spell
	for _, s := range g.spells.All() {
		if s.IsCantrip() || c.MaxSlots[s.Level] > 0 {
			learnable = append(learnable, s)
		}
	}
	if len(learnable) == 0 {
		return true
	}

	for {
		g.println(Colorize(BrightWhite, "\nLearn a spell (blank to finish):"))
		for i, s := range learnable {
			marker := "  "
			if c.Knows(s) {
				marker = Colorize(Dim, "* ")
			}
			g.println(fmt.Sprintf("  %s. %s%s", Colorf(Green, "%d", i+1), marker, s.String()))
		}
		line, ok := g.prompt("> ")
		if !ok {
			return false
		}
		if strings.TrimSpace(line) == "" {
			return true
		}
		s, found := pickFromList(learnable, line, func(s *magic.Spell) string { return s.Name })
		if !found {
			g.println(Colorize(Dim, "Pick a number from the list."))
			continue
		}
		if err := c.LearnSpell(s); err != nil {
			g.println(Colorize(Dim, "You already know that spell."))
			continue
		}
		g.println(Colorf(Magenta, "You learn %s.", s.Name))
	}
}

// runEncounter spawns a random monster and drives rounds until one side
// drops or the player flees. Returns whether the player is still alive.
func (g *Game) runEncounter(ctx context.Context, c *character.Character) (bool, error) {
	monster := g.monsters.Random(g.src)
	if monster == nil {
		g.println(Colorize(Dim, "The wilds are strangely quiet. Nothing to fight."))
		return true, nil
	}
	foe, err := monster.Spawn(g.weapons)
	if err != nil {
		return true, fmt.Errorf("spawning %s: %w", monster.ID, err)
	}

	g.println(Colorf(BrightRed, "\nA %s appears!", foe.Name))
	if monster.Description != "" {
		g.println(Colorize(Dim, monster.Description))
	}
	g.narrate(ctx, narrator.Event{
		Kind:   narrator.KindEncounterStart,
		Actor:  c.Name,
		Target: foe.Name,
	})

	enc := combat.NewEncounter(&c.Entity, foe, g.src)
	init, err := enc.RollInitiative()
	if err != nil {
		return true, fmt.Errorf("rolling initiative: %w", err)
	}
	g.println(RenderInitiative(init))

	for c.IsAlive() && foe.IsAlive() {
		enc.Round++
		g.println(Colorf(Cyan, "\n— Round %d —", enc.Round))

		for _, actor := range enc.Order() {
			if !c.IsAlive() || !foe.IsAlive() {
				break
			}
			if actor == &c.Entity {
				fled, err := g.playerTurn(ctx, c, enc, foe)
				if err != nil {
					return c.IsAlive(), err
				}
				if fled {
					g.println(Colorize(Dim, "You slip away from the fight."))
					return true, nil
				}
			} else {
				if err := g.enemyTurn(ctx, enc, foe, c); err != nil {
					return c.IsAlive(), err
				}
			}
		}
	}

	if !c.IsAlive() {
		g.println(Colorf(BrightRed, "\nThe %s strikes you down.", foe.Name))
		g.narrate(ctx, narrator.Event{
			Kind:   narrator.KindDefeat,
			Actor:  c.Name,
			Target: foe.Name,
		})
		return false, nil
	}

	g.println(Colorf(BrightGreen, "\nYou have slain the %s!", foe.Name))
	g.narrate(ctx, narrator.Event{
		Kind:   narrator.KindVictory,
		Actor:  c.Name,
		Target: foe.Name,
	})

	if monster.XPAward > 0 {
		result, err := g.progression.GainXP(c, monster.XPAward)
		if err != nil {
			return true, fmt.Errorf("awarding experience: %w", err)
		}
		g.println(Colorf(Yellow, "You gain %d XP (%d total).", result.XPGained, c.XP))
		for _, lv := range result.Levels {
			g.println(RenderLevelUp(lv))
			g.narrate(ctx, narrator.Event{
				Kind:  narrator.KindLevelUp,
				Actor: c.Name,
				Level: lv.Level,
			})
		}
	}
	return true, nil
}

// playerTurn reads and resolves one player action. Returns fled=true when
// the player leaves the encounter.
func (g *Game) playerTurn(ctx context.Context, c *character.Character, enc *combat.Encounter, foe *entity.Entity) (fled bool, err error) {
	for {
		g.println(RenderHealth(&c.Entity) + "  " + RenderHealth(foe))
		line, ok := g.prompt("[a]ttack, [c]ast, [f]lee > ")
		if !ok {
			return false, io.EOF
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "attack":
			res, err := enc.Attack(&c.Entity, foe)
			if err != nil {
				return false, fmt.Errorf("resolving attack: %w", err)
			}
			g.println(RenderAttack(res))
			g.narrate(ctx, narrator.Event{
				Kind:   narrator.KindAttack,
				Actor:  res.AttackerName,
				Target: res.DefenderName,
				Weapon: res.WeaponName,
				Amount: res.Damage,
				Hit:    res.Hit,
			})
			return false, nil
		case "c", "cast":
			cast, done, err := g.castTurn(ctx, c, foe)
			if err != nil {
				return false, err
			}
			if !done {
				return false, io.EOF
			}
			if cast {
				return false, nil
			}
			// No spell cast: loop for another action.
		case "f", "flee":
			return true, nil
		default:
			g.println(Colorize(Dim, "Pick attack, cast, or flee."))
		}
	}
}

// castTurn lets the player pick and cast a spell. cast reports whether a spell
// was actually cast; done=false means input ended.
func (g *Game) castTurn(ctx context.Context, c *character.Character, foe *entity.Entity) (cast, done bool, err error) {
	available := g.casting.AvailableSpells(c)
	if len(available) == 0 {
		g.println(Colorize(Dim, "You have no spell you can cast right now."))
		return false, true, nil
	}

	g.println(Colorize(BrightWhite, "Cast which spell? (blank to cancel)"))
	for i, s := range available {
		g.println(fmt.Sprintf("  %s. %s", Colorf(Green, "%d", i+1), s.String()))
	}
	line, ok := g.prompt("> ")
	if !ok {
		return false, false, nil
	}
	if strings.TrimSpace(line) == "" {
		return false, true, nil
	}
	spell, found := pickFromList(available, line, func(s *magic.Spell) string { return s.Name })
	if !found {
		g.println(Colorize(Dim, "Pick a number from the list."))
		return false, true, nil
	}

	amount, err := g.casting.Cast(c, spell, foe)
	if err != nil {
		if errors.Is(err, spellcasting.ErrCannotCast) {
			g.println(Colorize(Dim, "The spell will not come. No slot remains."))
			return false, true, nil
		}
		return false, true, fmt.Errorf("casting %s: %w", spell.Name, err)
	}

	g.println(RenderSpellEffect(c.Name, spell, foe.Name, amount))
	g.narrate(ctx, narrator.Event{
		Kind:   narrator.KindSpellCast,
		Actor:  c.Name,
		Target: foe.Name,
		Spell:  spell.Name,
		Amount: amount,
	})
	return true, true, nil
}

// enemyTurn resolves the monster's attack against the player.
func (g *Game) enemyTurn(ctx context.Context, enc *combat.Encounter, foe *entity.Entity, c *character.Character) error {
	res, err := enc.Attack(foe, &c.Entity)
	if err != nil {
		return fmt.Errorf("resolving enemy attack: %w", err)
	}
	g.println(RenderAttack(res))
	g.narrate(ctx, narrator.Event{
		Kind:   narrator.KindAttack,
		Actor:  res.AttackerName,
		Target: res.DefenderName,
		Weapon: res.WeaponName,
		Amount: res.Damage,
		Hit:    res.Hit,
	})
	return nil
}

// narrate prints prose from the narrator when it produces any. Failures are
// already absorbed by the narrator itself.
func (g *Game) narrate(ctx context.Context, ev narrator.Event) {
	if text, ok := g.narrator.Narrate(ctx, ev); ok {
		g.println(Colorize(Yellow, text))
	}
}

// prompt writes the label and reads one line. ok=false means input ended.
func (g *Game) prompt(label string) (string, bool) {
	fmt.Fprint(g.out, label)
	if !g.in.Scan() {
		return "", false
	}
	return g.in.Text(), true
}

func (g *Game) println(s string) {
	fmt.Fprintln(g.out, s)
}

// pickFromList resolves a 1-based index or a case-insensitive name against
// the list.
func pickFromList[T any](items []T, input string, name func(T) string) (T, bool) {
	var zero T
	trimmed := strings.TrimSpace(input)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= len(items) {
			return items[n-1], true
		}
		return zero, false
	}
	for _, item := range items {
		if strings.EqualFold(name(item), trimmed) {
			return item, true
		}
	}
	return zero, false
}
