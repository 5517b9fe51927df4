package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dndgame/internal/config"
	"github.com/cory-johannsen/dndgame/internal/frontend/console"
	"github.com/cory-johannsen/dndgame/internal/game/bestiary"
	"github.com/cory-johannsen/dndgame/internal/game/dice"
	"github.com/cory-johannsen/dndgame/internal/game/equipment"
	"github.com/cory-johannsen/dndgame/internal/game/magic"
	"github.com/cory-johannsen/dndgame/internal/game/progression"
	"github.com/cory-johannsen/dndgame/internal/game/ruleset"
	"github.com/cory-johannsen/dndgame/internal/game/spellcasting"
	"github.com/cory-johannsen/dndgame/internal/narrator"
	"github.com/cory-johannsen/dndgame/internal/observability"
)

var configPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive campaign",
	Long:  `Start an interactive campaign: character creation, encounters, and progression, with optional AI narration when an API key is configured.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	start := time.Now()

	// Best-effort: a missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting campaign",
		zap.String("config", configPath),
		zap.Bool("narrator", cfg.Narrator.Enabled),
	)

	races, err := ruleset.LoadRaceRegistry(cfg.Content.RacesDir)
	if err != nil {
		return fmt.Errorf("loading races: %w", err)
	}
	weapons, err := equipment.LoadRegistry(cfg.Content.WeaponsDir)
	if err != nil {
		return fmt.Errorf("loading weapons: %w", err)
	}
	spells, err := magic.LoadRegistry(cfg.Content.SpellsDir)
	if err != nil {
		return fmt.Errorf("loading spells: %w", err)
	}
	monsters, err := bestiary.LoadRegistry(cfg.Content.MonstersDir)
	if err != nil {
		return fmt.Errorf("loading monsters: %w", err)
	}
	xpTable, err := ruleset.LoadExperienceTable(cfg.Content.ExperienceTable)
	if err != nil {
		return fmt.Errorf("loading experience table: %w", err)
	}
	slotTable, err := ruleset.LoadSlotTable(cfg.Content.SpellSlotTable)
	if err != nil {
		return fmt.Errorf("loading spell slot table: %w", err)
	}

	logger.Info("content loaded",
		zap.Int("races", len(races.All())),
		zap.Int("weapons", len(weapons.All())),
		zap.Int("spells", len(spells.All())),
		zap.Int("monsters", len(monsters.All())),
		zap.Duration("elapsed", time.Since(start)),
	)

	src := dice.NewCryptoSource()
	game := console.NewGame(console.Deps{
		In:        os.Stdin,
		Out:       os.Stdout,
		Races:     races,
		Weapons:   weapons,
		Spells:    spells,
		Monsters:  monsters,
		SlotTable: slotTable,
		BaseHP:    cfg.Game.BaseHP,
		Progression: progression.NewEngine(
			xpTable, slotTable, src, logger.Named("progression")),
		Casting: spellcasting.NewEngine(logger.Named("spellcasting")),
		Narrator: narrator.New(cfg.Narrator.Enabled, narrator.Options{
			Model:     cfg.Narrator.Model,
			MaxTokens: cfg.Narrator.MaxTokens,
			Timeout:   cfg.Narrator.Timeout,
		}, logger.Named("narrator")),
		Src:    src,
		Logger: logger.Named("game"),
	})

	return game.Run(context.Background())
}
