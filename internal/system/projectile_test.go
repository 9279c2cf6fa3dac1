package system

import (
	"testing"
	"time"
)

func TestProjectileHitsTarget(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PrewarmPool("grunt", 4, nil); err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	e := spawnGruntAt(t, w, 3, 0) // 60 health, 0 armor
	s := NewProjectileSystem(w, testCombatConfig())

	w.SpawnProjectile(e.Handle(), 50, vec(0, 0), 10, 4)

	// Speed 10 over 3 units: impact inside 0.3s.
	for i := 0; i < 4; i++ {
		step(w, 100*time.Millisecond, s)
	}

	if got := e.Health(); got != 10 {
		t.Fatalf("target health = %v after impact, want 10", got)
	}
	if len(w.Projectiles()) != 0 {
		t.Fatalf("projectile survived its own impact")
	}
}

func TestProjectileDamageSnapshotSurvivesUpgrades(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PrewarmPool("grunt", 4, nil); err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	tw := placeArrow(t, w)
	e := spawnGruntAt(t, w, 3, 0)
	s := NewProjectileSystem(w, testCombatConfig())

	w.SpawnProjectile(e.Handle(), tw.Damage, tw.Position(), 10, 4)
	// Upgrading mid-flight must not change what the projectile deals.
	if err := w.UpgradeTower(tw); err != nil {
		t.Fatalf("upgrade: %v", err)
	}

	for i := 0; i < 4; i++ {
		step(w, 100*time.Millisecond, s)
	}
	if got := e.Health(); got != 10 {
		t.Fatalf("target health = %v, want 10 (launch-time damage 50, not %v)", got, tw.Damage)
	}
}

func TestProjectileAppliesArmor(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PrewarmPool("brute", 4, nil); err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	e, err := w.SpawnEnemy("brute") // 220 health, armor 4
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	e.Path.Warp(vec(3, 0))
	s := NewProjectileSystem(w, testCombatConfig())

	w.SpawnProjectile(e.Handle(), 50, vec(0, 0), 10, 4)
	for i := 0; i < 4; i++ {
		step(w, 100*time.Millisecond, s)
	}

	// 50 - 4 armor = 46 effective.
	if got := e.Health(); got != 174 {
		t.Fatalf("target health = %v, want 174", got)
	}
}

func TestProjectileExpiresHarmlesslyWhenTargetDies(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PrewarmPool("grunt", 4, nil); err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	e := spawnGruntAt(t, w, 3, 0)
	s := NewProjectileSystem(w, testCombatConfig())

	w.SpawnProjectile(e.Handle(), 50, vec(0, 0), 10, 4)
	money := w.Ledger.Money()

	// Target dies before the projectile arrives.
	w.DamageEnemy(e, 1000)
	drain(w)
	moneyAfterKill := w.Ledger.Money()

	// The projectile flies on to the last known point and fizzles.
	for i := 0; i < 5; i++ {
		step(w, 100*time.Millisecond, s)
	}
	drain(w)

	if len(w.Projectiles()) != 0 {
		t.Fatalf("projectile lingered after reaching a dead target's position")
	}
	if w.Ledger.Money() != moneyAfterKill {
		t.Fatalf("fizzled projectile changed the balance: %d -> %d", money, w.Ledger.Money())
	}
}

func TestProjectileLifetimeExpiry(t *testing.T) {
	w := newTestWorld(t)
	s := NewProjectileSystem(w, testCombatConfig())

	// No live target, crawling speed, distant last-known point: only the
	// lifetime budget can end this flight.
	p := w.SpawnProjectile(0, 50, vec(0, 0), 0.01, 0.3)
	p.LastKnown = vec(100, 0)

	for i := 0; i < 2; i++ {
		step(w, 100*time.Millisecond, s)
	}
	if len(w.Projectiles()) != 1 {
		t.Fatalf("projectile expired before its lifetime ran out")
	}
	step(w, 100*time.Millisecond, s)
	if len(w.Projectiles()) != 0 {
		t.Fatalf("projectile survived past its lifetime")
	}
}

func TestProjectileTracksMovingTarget(t *testing.T) {
	w := newTestWorld(t)
	if err := w.PrewarmPool("grunt", 4, nil); err != nil {
		t.Fatalf("prewarm: %v", err)
	}
	e := spawnGruntAt(t, w, 3, 0)
	s := NewProjectileSystem(w, testCombatConfig())

	p := w.SpawnProjectile(e.Handle(), 50, vec(0, 0), 10, 4)

	// Target relocates mid-flight; the flight path re-samples.
	e.Path.Warp(vec(3, 2))
	step(w, 100*time.Millisecond, s)
	if p.LastKnown != vec(3, 2) {
		t.Fatalf("last known = %v, want re-sampled (3, 2)", p.LastKnown)
	}
}
