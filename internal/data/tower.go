package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TowerTemplate holds static data for a tower type loaded from YAML. Templates
// are immutable value data; entities copy what they mutate at activation.
type TowerTemplate struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Health            float64 `yaml:"health"`
	Damage            float64 `yaml:"damage"`
	Range             float64 `yaml:"range"`
	FireRate          float64 `yaml:"fire_rate"` // shots per second
	Cost              int     `yaml:"cost"`
	UpgradeCost       int     `yaml:"upgrade_cost"`
	UpgradeMultiplier float64 `yaml:"upgrade_multiplier"`
}

type towerListFile struct {
	Towers []TowerTemplate `yaml:"towers"`
}

// TowerTable holds all tower templates indexed by ID.
type TowerTable struct {
	templates map[string]*TowerTemplate
}

// NewTowerTable builds a table from already-loaded templates.
func NewTowerTable(templates []TowerTemplate) *TowerTable {
	t := &TowerTable{templates: make(map[string]*TowerTemplate, len(templates))}
	for i := range templates {
		tpl := &templates[i]
		if tpl.UpgradeMultiplier <= 0 {
			tpl.UpgradeMultiplier = 1.25
		}
		t.templates[tpl.ID] = tpl
	}
	return t
}

// LoadTowerTable loads tower templates from a YAML file.
func LoadTowerTable(path string) (*TowerTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tower table: %w", err)
	}
	var f towerListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tower table: %w", err)
	}
	return NewTowerTable(f.Towers), nil
}

func (t *TowerTable) Get(id string) *TowerTemplate {
	return t.templates[id]
}

func (t *TowerTable) Count() int {
	return len(t.templates)
}
