package system

import (
	"time"

	"github.com/gridfort/sim/internal/config"
	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/world"
)

// EnemyAISystem drives every enemy's Spawned → Fighting → Dying flow:
// movement via the path-follow collaborator, arrival detection against the
// completion threshold, interval-based tower targeting, and melee attacks on
// an independent cooldown. Movement is never blocked by fighting — an enemy
// keeps walking while it swings. Phase 2 (Update).
type EnemyAISystem struct {
	world *world.World

	searchInterval  float64
	arriveThreshold float64
}

func NewEnemyAISystem(w *world.World, cfg config.CombatConfig) *EnemyAISystem {
	return &EnemyAISystem{
		world:           w,
		searchInterval:  cfg.SearchInterval.Std().Seconds(),
		arriveThreshold: cfg.ArriveThreshold,
	}
}

func (s *EnemyAISystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EnemyAISystem) Update(dt time.Duration) {
	now := s.world.Now()
	step := dt.Seconds()
	s.world.Enemies.Each(func(e *world.Enemy) {
		if !e.Alive() {
			return
		}

		// Movement: the collaborator owns the position, the core only reads
		// back "remaining distance" to detect arrival.
		e.Path.Advance(step)
		if e.Path.HasActivePath() && e.Path.RemainingDistance() <= s.arriveThreshold {
			s.world.EnemyReachedEnd(e)
			return
		}

		s.validateTarget(e)
		if e.Target.IsZero() && now >= e.NextSearchTime {
			e.NextSearchTime = now + s.searchInterval
			if id, ok := s.world.Towers.Nearest(e.Position(), e.Tpl.Range); ok {
				e.Target = id
			}
		}
		if !e.Target.IsZero() && s.canAttack(e, now) {
			s.attack(e, now)
		}
	})
}

// validateTarget drops the captured tower handle if the tower has been
// destroyed, sold, or is out of range.
func (s *EnemyAISystem) validateTarget(e *world.Enemy) {
	if e.Target.IsZero() {
		return
	}
	t, ok := s.world.Towers.Get(e.Target)
	if !ok || !t.Alive() || e.Position().DistSq(t.Position()) > e.Tpl.Range*e.Tpl.Range {
		e.Target = 0
	}
}

func (s *EnemyAISystem) canAttack(e *world.Enemy, now float64) bool {
	if e.Tpl.AttackRate <= 0 {
		return false
	}
	return now >= e.LastAttackTime+1.0/e.Tpl.AttackRate
}

func (s *EnemyAISystem) attack(e *world.Enemy, now float64) {
	t, ok := s.world.Towers.Get(e.Target)
	if !ok || !t.Alive() {
		e.Target = 0
		return
	}
	s.world.DamageTower(t, e.Tpl.Damage)
	e.LastAttackTime = now
	if !t.Alive() {
		e.Target = 0
	}
}
