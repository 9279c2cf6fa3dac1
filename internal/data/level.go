package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TowerPlacement is one pre-placed tower in the level layout.
type TowerPlacement struct {
	Tower string  `yaml:"tower"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// Level describes the static battlefield: where enemies enter, where the base
// sits, the per-tag pool sizes, and any towers placed before the first wave.
type Level struct {
	SpawnX    float64          `yaml:"spawn_x"`
	SpawnY    float64          `yaml:"spawn_y"`
	BaseX     float64          `yaml:"base_x"`
	BaseY     float64          `yaml:"base_y"`
	PoolSize  int              `yaml:"pool_size"` // inactive instances pre-warmed per enemy tag
	Towers    []TowerPlacement `yaml:"towers"`
}

// LoadLevel loads the level layout from a YAML file.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lv Level
	if err := yaml.Unmarshal(raw, &lv); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if lv.PoolSize <= 0 {
		lv.PoolSize = 32
	}
	return &lv, nil
}
