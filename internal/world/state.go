package world

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/gridfort/sim/internal/core/ecs"
	"github.com/gridfort/sim/internal/core/event"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
	"github.com/gridfort/sim/internal/scripting"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMaxUpgradeLevel   = errors.New("tower at max upgrade level")
)

// Params collects everything World needs at construction. Services are
// explicitly constructed and injected — single-instance semantics without
// hidden globals.
type Params struct {
	Log     *zap.Logger
	Bus     *event.Bus
	Scripts *scripting.Engine

	TowerTable *data.TowerTable
	EnemyTable *data.EnemyTable

	ScanCap            int
	StartingMoney      int
	StartingHealth     int
	MaxUpgradeLevel    int
	SellRefundFraction float64

	SpawnPos geom.Vec2
	BasePos  geom.Vec2
}

// World owns the shared mutable simulation state: the two registries, the
// enemy pool, the ledger, and the in-flight projectiles. All mutation happens
// on the game loop goroutine; systems hold a *World and call through it so
// every death, pool-return, and reward flows through one place.
type World struct {
	Log     *zap.Logger
	Bus     *event.Bus
	Scripts *scripting.Engine
	Towers  *Registry[*Tower]
	Enemies *Registry[*Enemy]
	Pool    *Pool
	Ledger  *Ledger

	towerTable *data.TowerTable
	enemyTable *data.EnemyTable

	alloc       *ecs.HandleAllocator
	projectiles []*Projectile
	releases    []releaseEntry

	now   float64 // sim-clock seconds
	cycle int     // endless wrap count, scales health and rewards

	spawnPos geom.Vec2
	basePos  geom.Vec2

	maxUpgradeLevel    int
	sellRefundFraction float64
}

type releaseEntry struct {
	tag string
	e   *Enemy
}

func New(p Params) *World {
	return &World{
		Log:                p.Log,
		Bus:                p.Bus,
		Scripts:            p.Scripts,
		Towers:             NewRegistry[*Tower](p.ScanCap),
		Enemies:            NewRegistry[*Enemy](p.ScanCap),
		Pool:               NewPool(p.Log),
		Ledger:             NewLedger(p.StartingMoney, p.StartingHealth, p.Bus, p.Log),
		towerTable:         p.TowerTable,
		enemyTable:         p.EnemyTable,
		alloc:              ecs.NewHandleAllocator(),
		spawnPos:           p.SpawnPos,
		basePos:            p.BasePos,
		maxUpgradeLevel:    p.MaxUpgradeLevel,
		sellRefundFraction: p.SellRefundFraction,
	}
}

// Now is the simulation clock in seconds. Advance is called once per tick by
// the loop owner, before the runner fires.
func (w *World) Now() float64        { return w.now }
func (w *World) Advance(dt float64)  { w.now += dt }
func (w *World) Cycle() int          { return w.cycle }
func (w *World) SetCycle(c int)      { w.cycle = c }
func (w *World) SpawnPos() geom.Vec2 { return w.spawnPos }
func (w *World) BasePos() geom.Vec2  { return w.basePos }

// ---------- enemy life-cycle ----------

// PrewarmPool pre-allocates size inactive instances for the enemy tag.
// followerFactory may be nil; the built-in straight-line follower is used.
func (w *World) PrewarmPool(tag string, size int, followerFactory func() PathFollower) error {
	if w.enemyTable.Get(tag) == nil {
		return fmt.Errorf("prewarm %q: %w", tag, ErrNilTemplate)
	}
	if followerFactory == nil {
		followerFactory = func() PathFollower { return NewLinearPathFollower(0) }
	}
	w.Pool.AddTag(tag, size, func() *Enemy {
		return NewEnemy(followerFactory())
	})
	return nil
}

// SpawnEnemy acquires a pooled instance for the tag, activates it at the
// spawn point headed for the base, and registers it. Pool exhaustion is
// returned to the caller, who skips the spawn rather than retrying.
func (w *World) SpawnEnemy(tag string) (*Enemy, error) {
	tpl := w.enemyTable.Get(tag)
	if tpl == nil {
		return nil, fmt.Errorf("spawn %q: %w", tag, ErrNilTemplate)
	}
	e, err := w.Pool.Acquire(tag)
	if err != nil {
		return nil, err
	}
	handle := w.alloc.Allocate()
	scale := w.Scripts.CalcWaveHealthScale(w.cycle)
	if err := e.Initialize(tpl, handle, w.spawnPos, w.basePos, scale); err != nil {
		w.alloc.Invalidate(handle)
		w.Pool.Release(tag, e)
		return nil, err
	}
	w.Enemies.Register(e)
	event.Emit(w.Bus, event.EnemySpawned{EntityID: handle, Tag: tag})
	return e, nil
}

// DamageEnemy applies damage and, exactly once per activation, runs the death
// transition: unregister, reward, pool-return. Damage against an already-dead
// enemy is a guarded no-op.
func (w *World) DamageEnemy(e *Enemy, amount float64) {
	if !e.Alive() {
		return
	}
	e.TakeDamage(amount)
	if !e.Alive() {
		reward := w.Scripts.CalcKillReward(e.Tpl.Reward, w.cycle)
		event.Emit(w.Bus, event.EnemyKilled{
			EntityID: e.Handle(),
			Tag:      e.Tpl.ID,
			Reward:   reward,
		})
		w.retireEnemy(e)
	}
}

// EnemyReachedEnd handles arrival at the base: base damage, death transition,
// no reward. The isDead latch keeps this and DamageEnemy mutually exclusive.
func (w *World) EnemyReachedEnd(e *Enemy) {
	if !e.Alive() {
		return
	}
	e.MarkDead()
	event.Emit(w.Bus, event.EnemyReachedEnd{
		EntityID: e.Handle(),
		Tag:      e.Tpl.ID,
		Damage:   int(math.Round(e.Tpl.Damage)),
	})
	w.retireEnemy(e)
}

// retireEnemy is the single Active→Inactive path: the handle goes stale
// immediately (so nothing scheduled can act on the instance), the registry
// entry disappears, and the pool-return is deferred to PhaseCleanup.
func (w *World) retireEnemy(e *Enemy) {
	w.Enemies.Unregister(e.Handle())
	w.alloc.Invalidate(e.Handle())
	w.releases = append(w.releases, releaseEntry{tag: e.Tpl.ID, e: e})
}

// FlushReleases returns retired enemies to the pool. Called by CleanupSystem
// at tick end so no system observes a half-reset instance mid-tick.
func (w *World) FlushReleases() {
	for _, r := range w.releases {
		w.Pool.Release(r.tag, r.e)
	}
	w.releases = w.releases[:0]
}

// ---------- tower life-cycle ----------

// PlaceTower buys and registers a tower at pos.
func (w *World) PlaceTower(tplID string, pos geom.Vec2) (*Tower, error) {
	tpl := w.towerTable.Get(tplID)
	if tpl == nil {
		return nil, fmt.Errorf("place %q: %w", tplID, ErrNilTemplate)
	}
	if !w.Ledger.SpendMoney(tpl.Cost) {
		return nil, fmt.Errorf("place %q (cost %d): %w", tplID, tpl.Cost, ErrInsufficientFunds)
	}
	t, err := NewTower(tpl, w.alloc.Allocate(), pos)
	if err != nil {
		return nil, err
	}
	w.Towers.Register(t)
	return t, nil
}

// UpgradeCost is the price of the tower's next upgrade. Grows geometrically
// with level via the formula engine.
func (w *World) UpgradeCost(t *Tower) int {
	return w.Scripts.CalcUpgradeCost(t.Tpl.UpgradeCost, t.UpgradeLevel())
}

// UpgradeTower applies one upgrade if the tower is below the level cap and
// the ledger can cover the cost.
func (w *World) UpgradeTower(t *Tower) error {
	if t.UpgradeLevel() >= w.maxUpgradeLevel {
		return ErrMaxUpgradeLevel
	}
	cost := w.UpgradeCost(t)
	if !w.Ledger.SpendMoney(cost) {
		return fmt.Errorf("upgrade %q (cost %d): %w", t.Tpl.ID, cost, ErrInsufficientFunds)
	}
	t.applyUpgrade(cost)
	event.Emit(w.Bus, event.TowerUpgraded{TowerID: t.Handle(), Level: t.UpgradeLevel()})
	return nil
}

// SellTower refunds a fraction of everything invested and removes the tower.
// Selling an already-destroyed (or already-sold) tower refunds nothing.
func (w *World) SellTower(t *Tower) int {
	if !t.Alive() {
		return 0
	}
	refund := int(float64(t.Invested()) * w.sellRefundFraction)
	w.Ledger.AddMoney(refund)
	t.destroyed = true
	w.Towers.Unregister(t.Handle())
	w.alloc.Invalidate(t.Handle())
	return refund
}

// DamageTower applies enemy damage and runs the destruction transition once.
func (w *World) DamageTower(t *Tower, amount float64) {
	if !t.Alive() {
		return
	}
	t.TakeDamage(amount)
	if !t.Alive() {
		id := t.Handle()
		w.Towers.Unregister(id)
		w.alloc.Invalidate(id)
		event.Emit(w.Bus, event.TowerDestroyed{TowerID: id})
	}
}

// ---------- projectiles ----------

// SpawnProjectile launches a projectile from a tower toward the target's
// current position, with the damage snapshot taken now.
func (w *World) SpawnProjectile(target ecs.EntityID, damage float64, from geom.Vec2, speed, lifetime float64) *Projectile {
	targetPos, ok := w.TargetPosition(target)
	if !ok {
		targetPos = from
	}
	p := NewProjectile(target, damage, from, targetPos, speed, lifetime)
	w.projectiles = append(w.projectiles, p)
	return p
}

// Projectiles exposes the live slice for the flight system.
func (w *World) Projectiles() []*Projectile { return w.projectiles }

// CompactProjectiles drops projectiles the flight system marked done.
func (w *World) CompactProjectiles(done func(*Projectile) bool) {
	kept := w.projectiles[:0]
	for _, p := range w.projectiles {
		if !done(p) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = kept
}

// ---------- weak-reference resolution ----------

// HandleLive reports whether a captured handle still refers to a current
// activation. Every resumed callback re-validates through this before acting.
func (w *World) HandleLive(id ecs.EntityID) bool {
	return !id.IsZero() && w.alloc.Live(id)
}

// TargetPosition resolves a handle (enemy or tower) to its position.
func (w *World) TargetPosition(id ecs.EntityID) (geom.Vec2, bool) {
	if e, ok := w.Enemies.Get(id); ok && e.Alive() {
		return e.Position(), true
	}
	if t, ok := w.Towers.Get(id); ok && t.Alive() {
		return t.Position(), true
	}
	return geom.Vec2{}, false
}

// ApplyDamage resolves a handle to its damageable entity and routes the hit
// through the kind-specific death handling. Stale handles are silently "no
// target" — never an error.
func (w *World) ApplyDamage(id ecs.EntityID, amount float64) bool {
	if e, ok := w.Enemies.Get(id); ok {
		if !e.Alive() {
			return false
		}
		w.DamageEnemy(e, amount)
		return true
	}
	if t, ok := w.Towers.Get(id); ok {
		if !t.Alive() {
			return false
		}
		w.DamageTower(t, amount)
		return true
	}
	return false
}

// Damageable is the capability query: it resolves a handle to the damage
// capability if the entity still exists and is still alive.
func (w *World) Damageable(id ecs.EntityID) (Damageable, bool) {
	if e, ok := w.Enemies.Get(id); ok && e.Alive() {
		return e, true
	}
	if t, ok := w.Towers.Get(id); ok && t.Alive() {
		return t, true
	}
	return nil, false
}

// TargetArmor returns the armor used by the impact damage formula. Towers
// have none.
func (w *World) TargetArmor(id ecs.EntityID) float64 {
	if e, ok := w.Enemies.Get(id); ok {
		return e.Tpl.Armor
	}
	return 0
}
