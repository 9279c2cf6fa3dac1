package world

import (
	"github.com/gridfort/sim/internal/core/ecs"
	"github.com/gridfort/sim/internal/geom"
)

// Projectile is a short-lived entity owned solely by the tick loop. Damage is
// snapshotted at launch — upgrades or death of the shooter after launch never
// change what a projectile in flight will deal. If the target dies mid-flight
// the projectile keeps flying to the last known position and expires
// harmlessly; there is no retargeting.
type Projectile struct {
	Target    ecs.EntityID
	Pos       geom.Vec2
	LastKnown geom.Vec2 // target position re-sampled while the target lives
	Speed     float64
	TTL       float64 // seconds of flight budget remaining

	damage float64
}

func NewProjectile(target ecs.EntityID, damage float64, from, targetPos geom.Vec2, speed, lifetime float64) *Projectile {
	return &Projectile{
		Target:    target,
		Pos:       from,
		LastKnown: targetPos,
		Speed:     speed,
		TTL:       lifetime,
		damage:    damage,
	}
}

// Damage is the launch-time snapshot.
func (p *Projectile) Damage() float64 { return p.damage }
