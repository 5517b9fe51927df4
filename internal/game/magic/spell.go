// Package magic provides spell definitions and the spell lookup registry.
package magic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CantripLevel is the spell level of slot-free, infinite-use spells.
const CantripLevel = 0

// MaxSpellLevel is the highest spell level modeled.
const MaxSpellLevel = 3

// Spell defines a castable spell loaded from YAML. Spells are immutable after
// loading and shared by reference across characters.
//
// Power is signed: a negative value marks a spell meant to heal. The casting
// engine still clamps the resolved amount at a floor of 0.
type Spell struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Level  int    `yaml:"level"` // 0 = cantrip
	School string `yaml:"school"`
	Power  int    `yaml:"power"`
}

// IsCantrip reports whether the spell is castable without a slot.
func (s *Spell) IsCantrip() bool { return s.Level == CantripLevel }

// String returns the spell in "Name (level N school)" form.
func (s *Spell) String() string {
	if s.IsCantrip() {
		return fmt.Sprintf("%s (cantrip, %s)", s.Name, s.School)
	}
	return fmt.Sprintf("%s (level %d %s)", s.Name, s.Level, s.School)
}

// Validate checks that the Spell satisfies its invariants.
//
// Precondition: s is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (s *Spell) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.Level < CantripLevel || s.Level > MaxSpellLevel {
		errs = append(errs, fmt.Errorf("level must be in [%d, %d], got %d", CantripLevel, MaxSpellLevel, s.Level))
	}
	if s.School == "" {
		errs = append(errs, errors.New("school must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("magic: spell %q invalid: %w", s.ID, errors.Join(errs...))
	}
	return nil
}

// LoadSpells reads all .yaml files in dir and parses each as a Spell.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated spells or a non-nil error.
func LoadSpells(dir string) ([]*Spell, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	spells := make([]*Spell, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var s Spell
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing spell file %s: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		spells = append(spells, &s)
	}
	return spells, nil
}

// yamlFiles returns the paths of all .yaml/.yml files directly in dir.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
