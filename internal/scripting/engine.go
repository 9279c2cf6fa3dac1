package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable combat formulas:
// projectile damage vs armor, kill rewards, upgrade costs, endless-cycle
// scaling. Single-goroutine access only (game loop). Every formula has a Go
// fallback, so a missing or broken script degrades to defaults instead of
// killing the simulation.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is not an error — the engine simply runs on
// built-in defaults.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(filepath.Join(scriptsDir, "combat")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load combat scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromSource builds an engine from an in-memory chunk. Test hook.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	e := &Engine{vm: vm, log: log}
	if src != "" {
		if err := vm.DoString(src); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load inline script: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext holds pre-packed data for a projectile impact calculation.
type DamageContext struct {
	Damage float64 // snapshot taken at launch
	Armor  float64 // target's armor at impact
}

// CalcProjectileDamage returns the effective damage a projectile deals on
// impact. Lua: calc_projectile_damage(ctx) with ctx.damage / ctx.armor.
// Default: max(1, damage - armor).
func (e *Engine) CalcProjectileDamage(ctx DamageContext) float64 {
	fn := e.vm.GetGlobal("calc_projectile_damage")
	if fn == lua.LNil {
		return defaultProjectileDamage(ctx)
	}

	tbl := e.vm.NewTable()
	tbl.RawSetString("damage", lua.LNumber(ctx.Damage))
	tbl.RawSetString("armor", lua.LNumber(ctx.Armor))

	v, err := e.call1(fn, tbl)
	if err != nil {
		e.log.Warn("calc_projectile_damage failed, using default", zap.Error(err))
		return defaultProjectileDamage(ctx)
	}
	return float64(v)
}

// CalcKillReward returns the money credited for a kill. Cycle counts endless
// wraps (0 on the first pass). Lua: calc_kill_reward(base_reward, cycle).
// Default: base_reward scaled 25% per cycle.
func (e *Engine) CalcKillReward(baseReward, cycle int) int {
	fn := e.vm.GetGlobal("calc_kill_reward")
	if fn == lua.LNil {
		return defaultKillReward(baseReward, cycle)
	}
	v, err := e.call1(fn, lua.LNumber(baseReward), lua.LNumber(cycle))
	if err != nil {
		e.log.Warn("calc_kill_reward failed, using default", zap.Error(err))
		return defaultKillReward(baseReward, cycle)
	}
	return int(v)
}

// CalcUpgradeCost returns the cost of the next tower upgrade at the given
// current level. Lua: calc_upgrade_cost(base_cost, level).
// Default: base_cost × 1.2^level, rounded.
func (e *Engine) CalcUpgradeCost(baseCost, level int) int {
	fn := e.vm.GetGlobal("calc_upgrade_cost")
	if fn == lua.LNil {
		return defaultUpgradeCost(baseCost, level)
	}
	v, err := e.call1(fn, lua.LNumber(baseCost), lua.LNumber(level))
	if err != nil {
		e.log.Warn("calc_upgrade_cost failed, using default", zap.Error(err))
		return defaultUpgradeCost(baseCost, level)
	}
	return int(v)
}

// CalcWaveHealthScale returns the enemy max-health multiplier for an endless
// cycle. Lua: calc_wave_health_scale(cycle). Default: 1.2^cycle.
func (e *Engine) CalcWaveHealthScale(cycle int) float64 {
	fn := e.vm.GetGlobal("calc_wave_health_scale")
	if fn == lua.LNil {
		return defaultWaveHealthScale(cycle)
	}
	v, err := e.call1(fn, lua.LNumber(cycle))
	if err != nil {
		e.log.Warn("calc_wave_health_scale failed, using default", zap.Error(err))
		return defaultWaveHealthScale(cycle)
	}
	return float64(v)
}

// call1 invokes a lua function expecting a single numeric return.
func (e *Engine) call1(fn lua.LValue, args ...lua.LValue) (lua.LNumber, error) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return 0, err
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("expected number return, got %s", ret.Type())
	}
	return n, nil
}

// ---------- Go fallbacks ----------

func defaultProjectileDamage(ctx DamageContext) float64 {
	d := ctx.Damage - ctx.Armor
	if d < 1 {
		d = 1
	}
	return d
}

func defaultKillReward(baseReward, cycle int) int {
	return int(float64(baseReward) * (1.0 + 0.25*float64(cycle)))
}

func defaultUpgradeCost(baseCost, level int) int {
	return int(math.Round(float64(baseCost) * math.Pow(1.2, float64(level))))
}

func defaultWaveHealthScale(cycle int) float64 {
	return math.Pow(1.2, float64(cycle))
}
