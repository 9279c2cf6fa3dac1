package world

import (
	"github.com/gridfort/sim/internal/core/ecs"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
)

// Tower is the runtime state of one placed tower. Position is fixed at
// placement. Current stats derive from the template:
// stat = base × multiplier^upgradeLevel.
type Tower struct {
	Tpl *data.TowerTemplate

	// Current effective stats. Mutated only by applyUpgrade.
	Damage   float64
	Range    float64
	FireRate float64 // shots per second

	// Combat state mutated by TowerCombatSystem. Times are sim-clock seconds.
	Target         ecs.EntityID // enemy currently engaged, 0 = none
	LastFireTime   float64
	NextSearchTime float64

	handle       ecs.EntityID
	pos          geom.Vec2
	health       float64
	upgradeLevel int
	invested     int // total money spent on this tower, for sell refunds
	destroyed    bool
}

func NewTower(tpl *data.TowerTemplate, handle ecs.EntityID, pos geom.Vec2) (*Tower, error) {
	if tpl == nil {
		return nil, ErrNilTemplate
	}
	return &Tower{
		Tpl:          tpl,
		Damage:       tpl.Damage,
		Range:        tpl.Range,
		FireRate:     tpl.FireRate,
		LastFireTime: -1e9, // first shot is never cooldown-gated
		handle:       handle,
		pos:          pos,
		health:       tpl.Health,
		invested:     tpl.Cost,
	}, nil
}

func (t *Tower) Handle() ecs.EntityID { return t.handle }
func (t *Tower) Position() geom.Vec2  { return t.pos }
func (t *Tower) Alive() bool          { return !t.destroyed }

// TakeDamage clamps health at zero and latches destruction exactly once.
func (t *Tower) TakeDamage(amount float64) {
	if t.destroyed || amount <= 0 {
		return
	}
	t.health -= amount
	if t.health <= 0 {
		t.health = 0
		t.destroyed = true
	}
}

func (t *Tower) Health() float64   { return t.health }
func (t *Tower) UpgradeLevel() int { return t.upgradeLevel }
func (t *Tower) Invested() int     { return t.invested }

// CanFire reports whether the fire-rate window has elapsed.
func (t *Tower) CanFire(now float64) bool {
	if t.FireRate <= 0 {
		return false
	}
	return now >= t.LastFireTime+1.0/t.FireRate
}

// applyUpgrade multiplies the effective stats by the template multiplier and
// bumps the level. Cost and level-cap checks live in World.UpgradeTower.
func (t *Tower) applyUpgrade(cost int) {
	m := t.Tpl.UpgradeMultiplier
	t.Damage *= m
	t.Range *= m
	t.FireRate *= m
	t.upgradeLevel++
	t.invested += cost
}
