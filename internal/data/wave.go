package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpawnGroup is one homogeneous batch inside a wave: Count enemies of one
// template, one every SpawnDelay seconds.
type SpawnGroup struct {
	Enemy      string  `yaml:"enemy"`
	Count      int     `yaml:"count"`
	SpawnDelay float64 `yaml:"spawn_delay"` // seconds between spawns
}

// WaveDef is an ordered list of spawn groups plus the pause in seconds before
// the next wave starts.
type WaveDef struct {
	Groups         []SpawnGroup `yaml:"groups"`
	InterWaveDelay float64      `yaml:"inter_wave_delay"`
}

type waveListFile struct {
	Waves []WaveDef `yaml:"waves"`
}

// LoadWaveList loads the ordered wave definitions from a YAML file.
func LoadWaveList(path string) ([]WaveDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wave list: %w", err)
	}
	var f waveListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse wave list: %w", err)
	}
	if len(f.Waves) == 0 {
		return nil, fmt.Errorf("wave list %s: no waves defined", path)
	}
	for i := range f.Waves {
		w := &f.Waves[i]
		if len(w.Groups) == 0 {
			return nil, fmt.Errorf("wave list %s: wave %d has no groups", path, i+1)
		}
		for j := range w.Groups {
			if w.Groups[j].Count <= 0 {
				return nil, fmt.Errorf("wave list %s: wave %d group %d: count must be positive", path, i+1, j+1)
			}
		}
	}
	return f.Waves, nil
}
