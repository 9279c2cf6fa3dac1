package world

import (
	"testing"

	"go.uber.org/zap"

	"github.com/gridfort/sim/internal/core/event"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/geom"
	"github.com/gridfort/sim/internal/scripting"
)

func testTowerTable() *data.TowerTable {
	return data.NewTowerTable([]data.TowerTemplate{
		{
			ID: "arrow", Name: "Arrow Tower",
			Health: 100, Damage: 50, Range: 5, FireRate: 2,
			Cost: 40, UpgradeCost: 30, UpgradeMultiplier: 1.25,
		},
		{
			ID: "cannon", Name: "Cannon",
			Health: 150, Damage: 120, Range: 4, FireRate: 0.5,
			Cost: 90, UpgradeCost: 60, UpgradeMultiplier: 1.25,
		},
	})
}

func testEnemyTable() *data.EnemyTable {
	return data.NewEnemyTable([]data.EnemyTemplate{
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
		{
			ID: "wisp", Name: "Wisp",
			Health: 10, Damage: 0.9, Armor: 0, Range: 1,
			AttackRate: 1, Speed: 4, Reward: 3,
		},
	})
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	eng, err := scripting.NewEngineFromSource("", zap.NewNop())
	if err != nil {
		t.Fatalf("scripting engine: %v", err)
	}
	t.Cleanup(eng.Close)
	return New(Params{
		Log:                zap.NewNop(),
		Bus:                event.NewBus(),
		Scripts:            eng,
		TowerTable:         testTowerTable(),
		EnemyTable:         testEnemyTable(),
		ScanCap:            0,
		StartingMoney:      200,
		StartingHealth:     20,
		MaxUpgradeLevel:    3,
		SellRefundFraction: 0.6,
		SpawnPos:           geom.Vec2{X: 0, Y: 0},
		BasePos:            geom.Vec2{X: 20, Y: 0},
	})
}

// pump delivers everything emitted so far: one buffer swap, one dispatch.
func pump(w *World) {
	w.Bus.SwapBuffers()
	w.Bus.DispatchAll()
}

func vec(x, y float64) geom.Vec2 { return geom.Vec2{X: x, Y: y} }
