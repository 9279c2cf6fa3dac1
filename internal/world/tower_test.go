package world

import (
	"errors"
	"testing"
)

func newTestTower(t *testing.T) *Tower {
	t.Helper()
	tpl := testTowerTable().Get("arrow") // damage 50, range 5, rate 2, ×1.25
	tw, err := NewTower(tpl, 1, vec(5, 5))
	if err != nil {
		t.Fatalf("new tower: %v", err)
	}
	return tw
}

func TestTowerNilTemplate(t *testing.T) {
	if _, err := NewTower(nil, 1, vec(0, 0)); !errors.Is(err, ErrNilTemplate) {
		t.Fatalf("err = %v, want ErrNilTemplate", err)
	}
}

func TestTowerFirstShotNotGated(t *testing.T) {
	tw := newTestTower(t)
	if !tw.CanFire(0) {
		t.Fatalf("fresh tower cannot fire at t=0")
	}
}

func TestTowerFireCooldown(t *testing.T) {
	tw := newTestTower(t) // 2 shots/s = 0.5s cooldown
	tw.LastFireTime = 10.0

	if tw.CanFire(10.3) {
		t.Fatalf("fired inside the cooldown window")
	}
	if !tw.CanFire(10.5) {
		t.Fatalf("cooldown expiry not inclusive")
	}
	if !tw.CanFire(11.0) {
		t.Fatalf("cannot fire well past the cooldown")
	}
}

func TestTowerUpgradeScalesStats(t *testing.T) {
	tw := newTestTower(t)
	tw.applyUpgrade(30)

	if tw.Damage != 62.5 {
		t.Errorf("damage = %v after upgrade, want 62.5", tw.Damage)
	}
	if tw.Range != 6.25 {
		t.Errorf("range = %v after upgrade, want 6.25", tw.Range)
	}
	if tw.FireRate != 2.5 {
		t.Errorf("fire rate = %v after upgrade, want 2.5", tw.FireRate)
	}
	if tw.UpgradeLevel() != 1 {
		t.Errorf("level = %d after upgrade, want 1", tw.UpgradeLevel())
	}
	if tw.Invested() != 40+30 {
		t.Errorf("invested = %d, want placement cost plus upgrade cost", tw.Invested())
	}
}

func TestTowerDestruction(t *testing.T) {
	tw := newTestTower(t) // 100 health
	tw.TakeDamage(60)
	if !tw.Alive() {
		t.Fatalf("tower destroyed with health remaining")
	}
	tw.TakeDamage(60)
	if tw.Alive() || tw.Health() != 0 {
		t.Fatalf("alive=%v health=%v after lethal damage", tw.Alive(), tw.Health())
	}
	tw.TakeDamage(10)
	if tw.Health() != 0 {
		t.Fatalf("damage applied to a destroyed tower")
	}
}
