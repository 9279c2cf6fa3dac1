package world

import (
	"errors"
	"testing"
)

func newTestEnemy(t *testing.T) *Enemy {
	t.Helper()
	e := NewEnemy(NewLinearPathFollower(0))
	tpl := testEnemyTable().Get("grunt") // 60 health
	if err := e.Initialize(tpl, 1, vec(0, 0), vec(20, 0), 1); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return e
}

func TestEnemyDamageClampsAtZero(t *testing.T) {
	e := newTestEnemy(t)

	e.TakeDamage(40)
	if e.Health() != 20 {
		t.Fatalf("health = %v after 40 damage, want 20", e.Health())
	}
	if !e.Alive() {
		t.Fatalf("enemy died with health remaining")
	}

	e.TakeDamage(70)
	if e.Health() != 0 {
		t.Fatalf("health = %v after overkill, want 0 (never negative)", e.Health())
	}
	if e.Alive() {
		t.Fatalf("enemy alive at zero health")
	}
}

func TestEnemyDamageAfterDeathIsNoOp(t *testing.T) {
	e := newTestEnemy(t)
	e.TakeDamage(100)
	e.TakeDamage(50)
	if e.Health() != 0 || e.Alive() {
		t.Fatalf("post-death damage changed state: health=%v alive=%v", e.Health(), e.Alive())
	}
}

func TestEnemyMarkDead(t *testing.T) {
	e := newTestEnemy(t)
	e.MarkDead()
	if e.Alive() || e.Health() != 0 {
		t.Fatalf("MarkDead: alive=%v health=%v", e.Alive(), e.Health())
	}
	// Damage after an arrival death stays a no-op.
	e.TakeDamage(10)
	if e.Health() != 0 {
		t.Fatalf("damage applied after MarkDead")
	}
}

func TestEnemyResetReportsDeadUntilReactivated(t *testing.T) {
	e := newTestEnemy(t)
	e.Reset()
	if e.Alive() {
		t.Fatalf("pooled instance reports alive")
	}

	// A registry entry that slipped past unregister must be sweepable.
	r := NewRegistry[*Enemy](0)
	tpl := testEnemyTable().Get("grunt")
	if err := e.Initialize(tpl, 2, vec(0, 0), vec(20, 0), 1); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	r.Register(e)
	e.Reset()
	if removed := r.Sweep(); removed != 1 {
		t.Fatalf("sweep removed %d entries, want the pooled instance", removed)
	}

	// Reactivation clears the latch.
	if err := e.Initialize(tpl, 3, vec(0, 0), vec(20, 0), 1); err != nil {
		t.Fatalf("reinitialize: %v", err)
	}
	if !e.Alive() {
		t.Fatalf("reactivated instance reports dead")
	}
}

func TestEnemyInitializeNilTemplate(t *testing.T) {
	e := NewEnemy(NewLinearPathFollower(0))
	err := e.Initialize(nil, 1, vec(0, 0), vec(20, 0), 1)
	if !errors.Is(err, ErrNilTemplate) {
		t.Fatalf("err = %v, want ErrNilTemplate", err)
	}
	if e.Alive() {
		t.Fatalf("uninitialized enemy reports alive")
	}
}

func TestEnemyHealthScale(t *testing.T) {
	e := NewEnemy(NewLinearPathFollower(0))
	tpl := testEnemyTable().Get("grunt")
	if err := e.Initialize(tpl, 1, vec(0, 0), vec(20, 0), 1.5); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if e.MaxHealth() != 90 {
		t.Fatalf("scaled max health = %v, want 90", e.MaxHealth())
	}
	if e.Health() != 90 {
		t.Fatalf("health = %v, want full scaled health", e.Health())
	}
}

func TestEnemyMovesAlongPath(t *testing.T) {
	e := NewEnemy(NewLinearPathFollower(0))
	tpl := testEnemyTable().Get("grunt") // speed 2
	if err := e.Initialize(tpl, 1, vec(0, 0), vec(20, 0), 1); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	e.Path.Advance(1.0)
	if got := e.Position(); got.X != 2 || got.Y != 0 {
		t.Fatalf("position after 1s = %v, want (2, 0)", got)
	}
	if !e.Path.HasActivePath() {
		t.Fatalf("path inactive mid-route")
	}
}
