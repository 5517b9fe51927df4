// Package equipment provides definitions and loaders for the weapon tables
// used by the combat engine.
package equipment

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weapon defines the static properties of a weapon loaded from YAML.
// Weapons are immutable after loading and shared by reference across entities.
type Weapon struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	DamageDie       int    `yaml:"damage_die"`        // faces per damage die
	DamageDiceCount int    `yaml:"damage_dice_count"` // number of damage dice; loader defaults 0 to 1
}

// String returns the weapon in "Name (XdY)" form, e.g. "Greatsword (2d6)".
func (w *Weapon) String() string {
	return fmt.Sprintf("%s (%dd%d)", w.Name, w.DamageDiceCount, w.DamageDie)
}

// Validate checks that the Weapon satisfies its invariants.
//
// Precondition: w is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (w *Weapon) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.DamageDie < 2 {
		errs = append(errs, fmt.Errorf("damage_die must be >= 2, got %d", w.DamageDie))
	}
	if w.DamageDiceCount < 1 {
		errs = append(errs, fmt.Errorf("damage_dice_count must be >= 1, got %d", w.DamageDiceCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("equipment: weapon %q invalid: %w", w.ID, errors.Join(errs...))
	}
	return nil
}

// LoadWeapons reads all .yaml files in dir and parses each as a Weapon.
// A zero damage_dice_count defaults to 1 before validation.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated weapons or a non-nil error.
func LoadWeapons(dir string) ([]*Weapon, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	weapons := make([]*Weapon, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var w Weapon
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("parsing weapon file %s: %w", path, err)
		}
		if w.DamageDiceCount == 0 {
			w.DamageDiceCount = 1
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}
