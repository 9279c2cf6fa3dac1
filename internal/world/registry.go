package world

import (
	"github.com/gridfort/sim/internal/core/ecs"
	"github.com/gridfort/sim/internal/geom"
)

// Entity is the contract registries track: a stable handle for the current
// activation, a world position, and a liveness test. Membership in a registry
// is what makes an entity targetable.
type Entity interface {
	Handle() ecs.EntityID
	Position() geom.Vec2
	Alive() bool
}

// Registry tracks the live instances of one entity kind in insertion order
// and answers spatial queries against them. It never owns the entities it
// tracks — the object pool does. Game-loop goroutine only, no locks.
type Registry[T Entity] struct {
	order []ecs.EntityID
	byID  map[ecs.EntityID]T

	// scanCap bounds the candidates a Nearest/InRange call visits.
	// 0 = unlimited. When capped, only the first scanCap registered entries
	// are considered — bounded cost traded for completeness.
	scanCap int
}

func NewRegistry[T Entity](scanCap int) *Registry[T] {
	return &Registry[T]{
		order:   make([]ecs.EntityID, 0, 128),
		byID:    make(map[ecs.EntityID]T, 128),
		scanCap: scanCap,
	}
}

// Register inserts the entity if absent. Duplicate registration is a no-op.
func (r *Registry[T]) Register(e T) {
	id := e.Handle()
	if _, ok := r.byID[id]; ok {
		return
	}
	r.byID[id] = e
	r.order = append(r.order, id)
}

// Unregister removes the entity if present. Unknown handles are a no-op.
func (r *Registry[T]) Unregister(id ecs.EntityID) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get resolves a handle to its entity. The second return is false for stale
// or never-registered handles.
func (r *Registry[T]) Get(id ecs.EntityID) (T, bool) {
	e, ok := r.byID[id]
	return e, ok
}

func (r *Registry[T]) Len() int {
	return len(r.byID)
}

// Each visits every registered entity in insertion order. It iterates a
// snapshot of the handle list, so entities may register or unregister from
// inside the callback (an enemy dying mid-iteration is fine).
func (r *Registry[T]) Each(fn func(T)) {
	ids := make([]ecs.EntityID, len(r.order))
	copy(ids, r.order)
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			fn(e)
		}
	}
}

// Nearest returns the live entity closest to pos within maxRange. Distances
// compare squared to avoid a square root per candidate. Exact ties go to the
// first-registered entity — deterministic, not geometrically meaningful.
func (r *Registry[T]) Nearest(pos geom.Vec2, maxRange float64) (ecs.EntityID, bool) {
	best := ecs.EntityID(0)
	bestDistSq := maxRange * maxRange
	found := false

	scanned := 0
	for _, id := range r.order {
		if r.scanCap > 0 && scanned >= r.scanCap {
			break
		}
		scanned++
		e, ok := r.byID[id]
		if !ok || !e.Alive() {
			continue
		}
		d := pos.DistSq(e.Position())
		if d <= bestDistSq && (!found || d < bestDistSq) {
			// "<=" admits candidates exactly at maxRange; strict "<" after
			// the first hit preserves first-registered tie-breaking.
			best = id
			bestDistSq = d
			found = true
		}
	}
	return best, found
}

// InRange returns all live entities within r of pos, in insertion order.
// A new slice every call; nothing is cached across calls.
func (r *Registry[T]) InRange(pos geom.Vec2, rng float64) []ecs.EntityID {
	rangeSq := rng * rng
	var out []ecs.EntityID
	scanned := 0
	for _, id := range r.order {
		if r.scanCap > 0 && scanned >= r.scanCap {
			break
		}
		scanned++
		e, ok := r.byID[id]
		if !ok || !e.Alive() {
			continue
		}
		if pos.DistSq(e.Position()) <= rangeSq {
			out = append(out, id)
		}
	}
	return out
}

// Sweep drops entries whose entities report dead — defence against missed
// unregister calls. Run on a fixed interval, not every tick.
func (r *Registry[T]) Sweep() int {
	removed := 0
	kept := r.order[:0]
	for _, id := range r.order {
		e, ok := r.byID[id]
		if !ok {
			removed++
			continue
		}
		if !e.Alive() {
			delete(r.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed
}
