package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnemyTemplate holds static data for an enemy type loaded from YAML. The
// template ID doubles as the object-pool tag for instances of this type.
type EnemyTemplate struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Health     float64 `yaml:"health"`
	Damage     float64 `yaml:"damage"` // per attack vs towers, and vs the base on arrival
	Armor      float64 `yaml:"armor"`
	Range      float64 `yaml:"range"`
	AttackRate float64 `yaml:"attack_rate"` // attacks per second
	Speed      float64 `yaml:"speed"`       // world units per second
	Reward     int     `yaml:"reward"`
}

type enemyListFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
}

// EnemyTable holds all enemy templates indexed by ID.
type EnemyTable struct {
	templates map[string]*EnemyTemplate
}

// NewEnemyTable builds a table from already-loaded templates.
func NewEnemyTable(templates []EnemyTemplate) *EnemyTable {
	t := &EnemyTable{templates: make(map[string]*EnemyTemplate, len(templates))}
	for i := range templates {
		e := &templates[i]
		t.templates[e.ID] = e
	}
	return t
}

// LoadEnemyTable loads enemy templates from a YAML file.
func LoadEnemyTable(path string) (*EnemyTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy table: %w", err)
	}
	var f enemyListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse enemy table: %w", err)
	}
	return NewEnemyTable(f.Enemies), nil
}

func (t *EnemyTable) Get(id string) *EnemyTemplate {
	return t.templates[id]
}

func (t *EnemyTable) Count() int {
	return len(t.templates)
}

func (t *EnemyTable) Each(fn func(*EnemyTemplate)) {
	for _, e := range t.templates {
		fn(e)
	}
}
