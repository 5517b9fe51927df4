// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ContentConfig holds the locations of the YAML rule content on disk.
type ContentConfig struct {
	// RacesDir is the directory of race definition files.
	RacesDir string `mapstructure:"races_dir"`
	// WeaponsDir is the directory of weapon definition files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// SpellsDir is the directory of spell definition files.
	SpellsDir string `mapstructure:"spells_dir"`
	// MonstersDir is the directory of monster definition files.
	MonstersDir string `mapstructure:"monsters_dir"`
	// ExperienceTable is the path to the cumulative XP threshold table.
	ExperienceTable string `mapstructure:"experience_table"`
	// SpellSlotTable is the path to the per-level spell slot table.
	SpellSlotTable string `mapstructure:"spell_slot_table"`
}

// GameConfig holds tunable game rules.
type GameConfig struct {
	// BaseHP is the hit point total every character starts from before the
	// Constitution modifier is applied.
	BaseHP int `mapstructure:"base_hp"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// NarratorConfig holds settings for the external narration service.
type NarratorConfig struct {
	// Enabled turns narration on. The API key is still read from the
	// environment; without one, narration silently stays off.
	Enabled bool `mapstructure:"enabled"`
	// Model is the text-generation model identifier.
	Model string `mapstructure:"model"`
	// MaxTokens caps the length of each narration response.
	MaxTokens int `mapstructure:"max_tokens"`
	// Timeout is the per-request deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the top-level application configuration.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Game     GameConfig     `mapstructure:"game"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Narrator NarratorConfig `mapstructure:"narrator"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateNarrator(c.Narrator); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.RacesDir == "" {
		errs = append(errs, "content.races_dir must not be empty")
	}
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.SpellsDir == "" {
		errs = append(errs, "content.spells_dir must not be empty")
	}
	if c.MonstersDir == "" {
		errs = append(errs, "content.monsters_dir must not be empty")
	}
	if c.ExperienceTable == "" {
		errs = append(errs, "content.experience_table must not be empty")
	}
	if c.SpellSlotTable == "" {
		errs = append(errs, "content.spell_slot_table must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	if g.BaseHP < 1 {
		return fmt.Errorf("game.base_hp must be >= 1, got %d", g.BaseHP)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateNarrator(n NarratorConfig) error {
	var errs []string
	if n.Enabled && n.Model == "" {
		errs = append(errs, "narrator.model must not be empty when narrator.enabled is true")
	}
	if n.MaxTokens < 1 {
		errs = append(errs, fmt.Sprintf("narrator.max_tokens must be >= 1, got %d", n.MaxTokens))
	}
	if n.Timeout <= 0 {
		errs = append(errs, "narrator.timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DNDGAME_ prefix
	v.SetEnvPrefix("DNDGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.races_dir", "content/races")
	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.spells_dir", "content/spells")
	v.SetDefault("content.monsters_dir", "content/monsters")
	v.SetDefault("content.experience_table", "content/tables/experience.yaml")
	v.SetDefault("content.spell_slot_table", "content/tables/spell_slots.yaml")

	v.SetDefault("game.base_hp", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("narrator.enabled", false)
	v.SetDefault("narrator.model", "claude-3-5-haiku-latest")
	v.SetDefault("narrator.max_tokens", 200)
	v.SetDefault("narrator.timeout", "15s")
}
