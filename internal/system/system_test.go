package system

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gridfort/sim/internal/config"
	"github.com/gridfort/sim/internal/core/event"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
	"github.com/gridfort/sim/internal/scripting"
	"github.com/gridfort/sim/internal/world"
)

func testCombatConfig() config.CombatConfig {
	return config.CombatConfig{
		SearchInterval:     config.Duration(250 * time.Millisecond),
		ProjectileSpeed:    10,
		ProjectileLifetime: config.Duration(4 * time.Second),
		HitRadius:          0.25,
		ArriveThreshold:    0.1,
		SellRefundFraction: 0.6,
		MaxUpgradeLevel:    3,
	}
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	eng, err := scripting.NewEngineFromSource("", zap.NewNop())
	if err != nil {
		t.Fatalf("scripting engine: %v", err)
	}
	t.Cleanup(eng.Close)

	towers := data.NewTowerTable([]data.TowerTemplate{
		{
			ID: "arrow", Name: "Arrow Tower",
			Health: 100, Damage: 50, Range: 5, FireRate: 2,
			Cost: 40, UpgradeCost: 30, UpgradeMultiplier: 1.25,
		},
	})
	enemies := data.NewEnemyTable([]data.EnemyTemplate{
		{
			ID: "grunt", Name: "Grunt",
			Health: 60, Damage: 5, Armor: 0, Range: 1.5,
			AttackRate: 1, Speed: 2, Reward: 8,
		},
		{
			ID: "brute", Name: "Brute",
			Health: 220, Damage: 12, Armor: 4, Range: 1.5,
			AttackRate: 0.5, Speed: 1, Reward: 25,
		},
	})

	return world.New(world.Params{
		Log:                zap.NewNop(),
		Bus:                event.NewBus(),
		Scripts:            eng,
		TowerTable:         towers,
		EnemyTable:         enemies,
		ScanCap:            0,
		StartingMoney:      500,
		StartingHealth:     20,
		MaxUpgradeLevel:    3,
		SellRefundFraction: 0.6,
		SpawnPos:           geom.Vec2{X: 0, Y: 0},
		BasePos:            geom.Vec2{X: 20, Y: 0},
	})
}

type ticker interface {
	Update(dt time.Duration)
}

// step advances the sim clock one tick and updates the given systems, the
// same Advance-then-update order the loop uses.
func step(w *world.World, dt time.Duration, systems ...ticker) {
	w.Advance(dt.Seconds())
	for _, s := range systems {
		s.Update(dt)
	}
}

// drain delivers every event queued so far, in emit order per type.
func drain(w *world.World) {
	w.Bus.SwapBuffers()
	w.Bus.DispatchAll()
}

func vec(x, y float64) geom.Vec2 { return geom.Vec2{X: x, Y: y} }
