package event

import "github.com/gridfort/sim/internal/core/ecs"

// Simulation event types. All are delivered one tick after emission.

type WaveStarted struct {
	Number int // 1-based, keeps counting across endless wraps
	Cycle  int // 0 on the first pass, +1 per wrap
}

type WaveEnded struct {
	Number int
}

type EnemySpawned struct {
	EntityID ecs.EntityID
	Tag      string
}

// EnemyKilled fires only for deaths caused by damage. Reward is the final
// lua-scaled amount, snapshotted at the moment of death.
type EnemyKilled struct {
	EntityID ecs.EntityID
	Tag      string
	Reward   int
}

// EnemyReachedEnd fires when an enemy arrives at the base. No reward.
type EnemyReachedEnd struct {
	EntityID ecs.EntityID
	Tag      string
	Damage   int
}

type TowerFired struct {
	TowerID  ecs.EntityID
	TargetID ecs.EntityID
}

type TowerUpgraded struct {
	TowerID ecs.EntityID
	Level   int
}

type TowerDestroyed struct {
	TowerID ecs.EntityID
}

type MoneyChanged struct {
	Money int
}

type BaseHealthChanged struct {
	Health int
}

type GameOver struct{}
