// Package ruleset provides the static rule tables — races, experience
// thresholds, and spell-slot progression — loaded once at startup and passed
// explicitly into the engines that consume them.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dndgame/internal/game/entity"
)

// Race defines a playable race and its ability score bonuses.
// Bonuses may be negative; abilities absent from the map get no adjustment.
type Race struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Bonuses     map[string]int `yaml:"bonuses"` // keyed by canonical ability identifier (STR..CHA)
}

// Validate checks all required fields and that bonus keys are canonical abilities.
//
// Precondition: r is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (r *Race) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if r.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	for key := range r.Bonuses {
		if _, ok := entity.ParseAbility(key); !ok {
			errs = append(errs, fmt.Errorf("bonus key %q is not a canonical ability", key))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ruleset: race %q invalid: %w", r.ID, errors.Join(errs...))
	}
	return nil
}

// LoadRaces reads all .yaml files in dir and parses each as a Race.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated races or a non-nil error.
func LoadRaces(dir string) ([]*Race, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	races := make([]*Race, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var r Race
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parsing race file %s: %w", path, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		races = append(races, &r)
	}
	return races, nil
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
