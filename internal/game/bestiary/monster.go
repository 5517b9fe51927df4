// Package bestiary provides monster definitions and the factory that turns
// them into combat entities.
package bestiary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dndgame/internal/game/entity"
	"github.com/cory-johannsen/dndgame/internal/game/equipment"
)

// Monster defines a spawnable enemy loaded from YAML. Monsters are
// constructed fully-formed per encounter and discarded afterwards.
type Monster struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	HP          int            `yaml:"hp"`
	ArmorClass  int            `yaml:"armor_class"` // loader defaults 0 to entity.DefaultArmorClass
	Stats       map[string]int `yaml:"stats"`       // keyed by canonical ability identifier
	Weapon      string         `yaml:"weapon"`      // weapon ID; empty = unarmed
	XPAward     int            `yaml:"xp_award"`
}

// Validate checks all required fields and that the stat block is complete.
//
// Precondition: m is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (m *Monster) Validate() error {
	var errs []error
	if m.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if m.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if m.HP < 1 {
		errs = append(errs, fmt.Errorf("hp must be >= 1, got %d", m.HP))
	}
	if m.ArmorClass < 1 {
		errs = append(errs, fmt.Errorf("armor_class must be >= 1, got %d", m.ArmorClass))
	}
	if m.XPAward < 0 {
		errs = append(errs, fmt.Errorf("xp_award must be >= 0, got %d", m.XPAward))
	}
	for _, a := range entity.Abilities() {
		if _, ok := m.Stats[string(a)]; !ok {
			errs = append(errs, fmt.Errorf("stats missing ability %s", a))
		}
	}
	for key := range m.Stats {
		if _, ok := entity.ParseAbility(key); !ok {
			errs = append(errs, fmt.Errorf("stat key %q is not a canonical ability", key))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("bestiary: monster %q invalid: %w", m.ID, errors.Join(errs...))
	}
	return nil
}

// Spawn builds a fully-formed combat entity from the definition, resolving
// the weapon reference against weapons.
//
// Precondition: m must be validated; weapons must be non-nil.
// Postcondition: Returns an entity at full hit points, or an error for an
// unresolvable weapon ID.
func (m *Monster) Spawn(weapons *equipment.Registry) (*entity.Entity, error) {
	e := entity.New(m.Name)
	scores := make(map[entity.Ability]int, 6)
	for key, v := range m.Stats {
		a, ok := entity.ParseAbility(key)
		if !ok {
			return nil, fmt.Errorf("bestiary: monster %q has unknown stat %q", m.ID, key)
		}
		scores[a] = v
	}
	if err := e.Stats.SetScores(scores); err != nil {
		return nil, fmt.Errorf("bestiary: monster %q: %w", m.ID, err)
	}

	e.MaxHP = m.HP
	e.HP = m.HP
	e.ArmorClass = m.ArmorClass

	if m.Weapon != "" {
		w, ok := weapons.Weapon(m.Weapon)
		if !ok {
			return nil, fmt.Errorf("bestiary: monster %q references unknown weapon %q", m.ID, m.Weapon)
		}
		e.Weapon = w
	}
	return &e, nil
}

// LoadMonsters reads all .yaml files in dir and parses each as a Monster.
// A zero armor_class defaults to entity.DefaultArmorClass before validation.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated monsters or a non-nil error.
func LoadMonsters(dir string) ([]*Monster, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	monsters := make([]*Monster, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var m Monster
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing monster file %s: %w", path, err)
		}
		if m.ArmorClass == 0 {
			m.ArmorClass = entity.DefaultArmorClass
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		monsters = append(monsters, &m)
	}
	return monsters, nil
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
