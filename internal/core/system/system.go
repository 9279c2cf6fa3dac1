package system

import "time"

// Phase defines execution ordering within a single simulation tick.
type Phase int

const (
	PhaseDispatch Phase = iota // 0: deliver last tick's events
	PhaseSpawn                 // 1: wave scheduler, pool acquisition
	PhaseUpdate                // 2: tower/enemy/projectile logic
	PhaseSweep                 // 3: periodic registry maintenance
	PhaseCleanup               // 4: pool-return queued entities
)

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
