package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim      SimConfig      `toml:"sim"`
	Registry RegistryConfig `toml:"registry"`
	Combat   CombatConfig   `toml:"combat"`
	Waves    WavesConfig    `toml:"waves"`
	Economy  EconomyConfig  `toml:"economy"`
	Scripts  ScriptsConfig  `toml:"scripts"`
	Data     DataConfig     `toml:"data"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Duration lets TOML carry "250ms"-style strings into duration fields.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

type SimConfig struct {
	TickRate Duration `toml:"tick_rate"`
}

type RegistryConfig struct {
	// ScanCap bounds the number of candidates a nearest-search visits per
	// call. 0 = unlimited. When capped, only the first N registered entities
	// are considered — a documented approximation, not a bug.
	ScanCap       int      `toml:"scan_cap"`
	SweepInterval Duration `toml:"sweep_interval"`
}

type CombatConfig struct {
	SearchInterval     Duration `toml:"search_interval"` // target re-evaluation period
	ProjectileSpeed    float64  `toml:"projectile_speed"`
	ProjectileLifetime Duration `toml:"projectile_lifetime"`
	HitRadius          float64  `toml:"hit_radius"`       // projectile arrival threshold
	ArriveThreshold    float64  `toml:"arrive_threshold"` // enemy "reached base" distance
	SellRefundFraction float64  `toml:"sell_refund_fraction"`
	MaxUpgradeLevel    int      `toml:"max_upgrade_level"`
}

type WavesConfig struct {
	Endless bool `toml:"endless"` // wrap to the first wave after the last
}

type EconomyConfig struct {
	StartingMoney  int `toml:"starting_money"`
	StartingHealth int `toml:"starting_health"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type DataConfig struct {
	Towers  string `toml:"towers"`
	Enemies string `toml:"enemies"`
	Waves   string `toml:"waves"`
	Level   string `toml:"level"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate: Duration(50 * time.Millisecond),
		},
		Registry: RegistryConfig{
			ScanCap:       0,
			SweepInterval: Duration(2 * time.Second),
		},
		Combat: CombatConfig{
			SearchInterval:     Duration(250 * time.Millisecond),
			ProjectileSpeed:    18.0,
			ProjectileLifetime: Duration(4 * time.Second),
			HitRadius:          0.25,
			ArriveThreshold:    0.1,
			SellRefundFraction: 0.6,
			MaxUpgradeLevel:    3,
		},
		Waves: WavesConfig{
			Endless: true,
		},
		Economy: EconomyConfig{
			StartingMoney:  200,
			StartingHealth: 20,
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Data: DataConfig{
			Towers:  "data/towers.yaml",
			Enemies: "data/enemies.yaml",
			Waves:   "data/waves.yaml",
			Level:   "data/level.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
