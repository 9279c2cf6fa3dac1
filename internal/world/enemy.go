package world

import (
	"errors"

	"github.com/gridfort/sim/internal/core/ecs"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
)

// ErrNilTemplate is a configuration error: activation aborts, the instance
// stays pooled, the simulation keeps running.
var ErrNilTemplate = errors.New("nil template")

// Enemy is the runtime state of one pooled enemy instance. Its position is
// owned by the PathFollower collaborator; the core only reads progress
// signals. Accessed only from the game loop goroutine — no locks.
type Enemy struct {
	Tpl  *data.EnemyTemplate
	Path PathFollower

	// Combat state mutated by EnemyAISystem. Times are sim-clock seconds.
	Target         ecs.EntityID // tower currently engaged, 0 = none
	LastAttackTime float64
	NextSearchTime float64

	handle    ecs.EntityID
	spawn     geom.Vec2
	maxHealth float64 // template health × endless-cycle scale
	health    float64
	dead      bool
}

// NewEnemy is the pool factory. The instance stays inert until Initialize.
func NewEnemy(path PathFollower) *Enemy {
	return &Enemy{Path: path}
}

// Initialize transitions Inactive→Active: resets every mutable field, warps
// to the spawn point, and starts movement toward dest. healthScale is the
// endless-cycle multiplier (1.0 on the first pass).
func (e *Enemy) Initialize(tpl *data.EnemyTemplate, handle ecs.EntityID, spawn, dest geom.Vec2, healthScale float64) error {
	if tpl == nil {
		return ErrNilTemplate
	}
	if healthScale <= 0 {
		healthScale = 1
	}
	e.Tpl = tpl
	e.handle = handle
	e.spawn = spawn
	e.maxHealth = tpl.Health * healthScale
	e.health = e.maxHealth
	e.dead = false
	e.Target = 0
	e.LastAttackTime = 0
	e.NextSearchTime = 0
	if lf, ok := e.Path.(*LinearPathFollower); ok {
		lf.SetSpeed(tpl.Speed)
	}
	e.Path.Warp(spawn)
	e.Path.SetDestination(dest)
	return nil
}

// Reset restores the canonical clean state before the instance goes back in
// the pool: full health, no target, timers zeroed, repositioned to spawn.
// The dead latch stays set while pooled — a registry entry that slipped past
// unregister must keep reporting dead so the sweep can drop it. Initialize
// clears the latch on the next activation. Called by Pool.Release.
func (e *Enemy) Reset() {
	e.health = e.maxHealth
	e.dead = true
	e.Target = 0
	e.LastAttackTime = 0
	e.NextSearchTime = 0
	e.handle = 0
	if e.Path != nil {
		e.Path.Warp(e.spawn)
	}
}

func (e *Enemy) Handle() ecs.EntityID { return e.handle }

func (e *Enemy) Position() geom.Vec2 {
	if e.Path == nil {
		return e.spawn
	}
	return e.Path.Position()
}

// TakeDamage clamps health at zero and latches the dead flag exactly once.
// Damaging an already-dead enemy changes nothing.
func (e *Enemy) TakeDamage(amount float64) {
	if e.dead || amount <= 0 {
		return
	}
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		e.dead = true
	}
}

// MarkDead latches the dead flag for non-damage deaths (reached the base).
// Idempotent with TakeDamage: whichever fires first wins.
func (e *Enemy) MarkDead() {
	e.health = 0
	e.dead = true
}

func (e *Enemy) Health() float64    { return e.health }
func (e *Enemy) MaxHealth() float64 { return e.maxHealth }
func (e *Enemy) Alive() bool        { return !e.dead && e.Tpl != nil }
