package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridfort/sim/internal/config"
	"github.com/gridfort/sim/internal/core/event"
	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
	"github.com/gridfort/sim/internal/scripting"
	"github.com/gridfort/sim/internal/system"
	"github.com/gridfort/sim/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           Gridfort  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m     headless tower-defense simulation     \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ──────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("GRIDFORT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load static definitions
	printSection("data")

	towerTable, err := data.LoadTowerTable(cfg.Data.Towers)
	if err != nil {
		return err
	}
	enemyTable, err := data.LoadEnemyTable(cfg.Data.Enemies)
	if err != nil {
		return err
	}
	waves, err := data.LoadWaveList(cfg.Data.Waves)
	if err != nil {
		return err
	}
	level, err := data.LoadLevel(cfg.Data.Level)
	if err != nil {
		return err
	}
	printStat("tower templates", towerTable.Count())
	printStat("enemy templates", enemyTable.Count())
	printStat("waves", len(waves))

	// 4. Formula scripts
	scripts, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()

	// 5. Build the world
	bus := event.NewBus()
	w := world.New(world.Params{
		Log:                log,
		Bus:                bus,
		Scripts:            scripts,
		TowerTable:         towerTable,
		EnemyTable:         enemyTable,
		ScanCap:            cfg.Registry.ScanCap,
		StartingMoney:      cfg.Economy.StartingMoney,
		StartingHealth:     cfg.Economy.StartingHealth,
		MaxUpgradeLevel:    cfg.Combat.MaxUpgradeLevel,
		SellRefundFraction: cfg.Combat.SellRefundFraction,
		SpawnPos:           geom.Vec2{X: level.SpawnX, Y: level.SpawnY},
		BasePos:            geom.Vec2{X: level.BaseX, Y: level.BaseY},
	})

	// 6. Pre-warm enemy pools — no allocation after this point
	enemyTable.Each(func(tpl *data.EnemyTemplate) {
		if err := w.PrewarmPool(tpl.ID, level.PoolSize, nil); err != nil {
			log.Warn("pool prewarm failed", zap.String("tag", tpl.ID), zap.Error(err))
		}
	})

	// 7. Place the level's initial towers
	placed := 0
	for _, tp := range level.Towers {
		if _, err := w.PlaceTower(tp.Tower, geom.Vec2{X: tp.X, Y: tp.Y}); err != nil {
			log.Warn("tower placement failed", zap.String("tower", tp.Tower), zap.Error(err))
			continue
		}
		placed++
	}
	printStat("towers placed", placed)

	// 8. Register systems
	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(bus))
	waveSys := system.NewWaveSystem(w, waves, cfg.Waves.Endless, log)
	runner.Register(waveSys)
	runner.Register(system.NewTowerCombatSystem(w, cfg.Combat))
	runner.Register(system.NewEnemyAISystem(w, cfg.Combat))
	runner.Register(system.NewProjectileSystem(w, cfg.Combat))
	runner.Register(system.NewSweepSystem(w, cfg.Registry.SweepInterval.Std(), log))
	runner.Register(system.NewCleanupSystem(w))

	// 9. Run the loop until the base falls or we're told to stop
	gameOverCh := make(chan struct{}, 1)
	event.Subscribe(bus, func(event.GameOver) {
		select {
		case gameOverCh <- struct{}{}:
		default:
		}
	})

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tick := cfg.Sim.TickRate.Std()
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	printSection("simulation ready")
	printReady(fmt.Sprintf("loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	statusCounter := 0
	statusInterval := int(10 * time.Second / tick)
	if statusInterval < 1 {
		statusInterval = 1
	}

	for {
		select {
		case <-ticker.C:
			w.Advance(tick.Seconds())
			runner.Tick(tick)

			statusCounter++
			if statusCounter >= statusInterval {
				statusCounter = 0
				log.Info("status",
					zap.Int("wave", waveSys.WaveNumber()),
					zap.Int("cycle", waveSys.Cycle()),
					zap.Int("money", w.Ledger.Money()),
					zap.Int("base_health", w.Ledger.Health()),
					zap.Int("enemies", w.Enemies.Len()),
					zap.Int("towers", w.Towers.Len()))
			}
		case <-gameOverCh:
			log.Info("game over",
				zap.Int("waves_survived", waveSys.WavesCompleted()),
				zap.Int("final_money", w.Ledger.Money()))
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
