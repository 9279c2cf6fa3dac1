package system

import (
	"time"

	"github.com/gridfort/sim/internal/config"
	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/scripting"
	"github.com/gridfort/sim/internal/world"
)

// ProjectileSystem moves projectiles and applies impact damage. While the
// target handle stays live its position is re-sampled each tick; once the
// target dies or is pooled the projectile keeps flying to the last known
// point and expires harmlessly on its lifetime budget. Phase 2 (Update).
type ProjectileSystem struct {
	world     *world.World
	hitRadius float64
}

func NewProjectileSystem(w *world.World, cfg config.CombatConfig) *ProjectileSystem {
	return &ProjectileSystem{world: w, hitRadius: cfg.HitRadius}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	expired := make(map[*world.Projectile]bool)

	for _, p := range s.world.Projectiles() {
		p.TTL -= step

		// Re-sample while the target remains valid.
		if pos, ok := s.world.TargetPosition(p.Target); ok {
			p.LastKnown = pos
		}

		dist := p.Pos.Dist(p.LastKnown)
		travel := p.Speed * step
		if travel >= dist || dist <= s.hitRadius {
			p.Pos = p.LastKnown
			s.impact(p)
			expired[p] = true
			continue
		}
		dir := p.LastKnown.Sub(p.Pos).Normalized()
		p.Pos = p.Pos.Add(dir.Scale(travel))

		if p.TTL <= 0 {
			expired[p] = true // target long gone, flight budget spent
		}
	}

	if len(expired) > 0 {
		s.world.CompactProjectiles(func(p *world.Projectile) bool {
			return expired[p]
		})
	}
}

// impact applies the snapshot damage if the target still implements the
// damage capability and still exists. A stale target is not an error — the
// projectile just fizzles at the last known point.
func (s *ProjectileSystem) impact(p *world.Projectile) {
	if _, ok := s.world.Damageable(p.Target); !ok {
		return
	}
	effective := s.world.Scripts.CalcProjectileDamage(scripting.DamageContext{
		Damage: p.Damage(),
		Armor:  s.world.TargetArmor(p.Target),
	})
	s.world.ApplyDamage(p.Target, effective)
}
