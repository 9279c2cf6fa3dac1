package world

import "github.com/gridfort/sim/internal/geom"

// PathFollower is the consumed navigation capability. The core never computes
// paths; it sets a destination and reads back progress signals. Integrations
// that drive movement on their own schedule may no-op Advance.
type PathFollower interface {
	SetDestination(p geom.Vec2)
	RemainingDistance() float64
	HasActivePath() bool
	Position() geom.Vec2
	Warp(p geom.Vec2) // instant reposition, clears the active path
	Advance(dt float64)
}

// LinearPathFollower is the straight-line stand-in used by the headless
// simulation and tests: constant-speed motion toward the destination.
type LinearPathFollower struct {
	pos    geom.Vec2
	dest   geom.Vec2
	speed  float64
	active bool
}

func NewLinearPathFollower(speed float64) *LinearPathFollower {
	return &LinearPathFollower{speed: speed}
}

func (f *LinearPathFollower) SetDestination(p geom.Vec2) {
	f.dest = p
	f.active = true
}

func (f *LinearPathFollower) RemainingDistance() float64 {
	if !f.active {
		return 0
	}
	return f.pos.Dist(f.dest)
}

func (f *LinearPathFollower) HasActivePath() bool { return f.active }

func (f *LinearPathFollower) Position() geom.Vec2 { return f.pos }

func (f *LinearPathFollower) Warp(p geom.Vec2) {
	f.pos = p
	f.active = false
}

func (f *LinearPathFollower) SetSpeed(speed float64) { f.speed = speed }

func (f *LinearPathFollower) Advance(dt float64) {
	if !f.active {
		return
	}
	step := f.speed * dt
	dist := f.pos.Dist(f.dest)
	if step >= dist {
		f.pos = f.dest
		return
	}
	dir := f.dest.Sub(f.pos).Normalized()
	f.pos = f.pos.Add(dir.Scale(step))
}
