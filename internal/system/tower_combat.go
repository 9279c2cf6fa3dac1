package system

import (
	"time"

	"github.com/gridfort/sim/internal/config"
	"github.com/gridfort/sim/internal/core/event"
	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/world"
)

// TowerCombatSystem drives every tower's Idle → Acquiring → Engaged loop.
// The current target is re-validated every tick (cheap: one map lookup and a
// distance check); a fresh nearest-search only runs on the re-evaluation
// interval, and only when there is no valid target — keeping a live in-range
// target avoids thrashing between near-equidistant enemies. Phase 2 (Update).
type TowerCombatSystem struct {
	world *world.World

	searchInterval     float64 // seconds between target searches
	projectileSpeed    float64
	projectileLifetime float64
}

func NewTowerCombatSystem(w *world.World, cfg config.CombatConfig) *TowerCombatSystem {
	return &TowerCombatSystem{
		world:              w,
		searchInterval:     cfg.SearchInterval.Std().Seconds(),
		projectileSpeed:    cfg.ProjectileSpeed,
		projectileLifetime: cfg.ProjectileLifetime.Std().Seconds(),
	}
}

func (s *TowerCombatSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TowerCombatSystem) Update(_ time.Duration) {
	now := s.world.Now()
	s.world.Towers.Each(func(t *world.Tower) {
		if !t.Alive() {
			return
		}
		s.validateTarget(t)
		if t.Target.IsZero() && now >= t.NextSearchTime {
			t.NextSearchTime = now + s.searchInterval
			if id, ok := s.world.Enemies.Nearest(t.Position(), t.Range); ok {
				t.Target = id
			}
		}
		if !t.Target.IsZero() && t.CanFire(now) {
			s.fire(t, now)
		}
	})
}

// validateTarget drops the captured target handle if the enemy has died,
// been pooled, or left range since the last tick.
func (s *TowerCombatSystem) validateTarget(t *world.Tower) {
	if t.Target.IsZero() {
		return
	}
	e, ok := s.world.Enemies.Get(t.Target)
	if !ok || !e.Alive() || t.Position().DistSq(e.Position()) > t.Range*t.Range {
		t.Target = 0
	}
}

func (s *TowerCombatSystem) fire(t *world.Tower, now float64) {
	s.world.SpawnProjectile(t.Target, t.Damage, t.Position(), s.projectileSpeed, s.projectileLifetime)
	t.LastFireTime = now
	event.Emit(s.world.Bus, event.TowerFired{TowerID: t.Handle(), TargetID: t.Target})
}
