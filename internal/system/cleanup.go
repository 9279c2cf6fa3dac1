package system

import (
	"time"

	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/world"
)

// CleanupSystem flushes the deferred pool-return queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.World
}

func NewCleanupSystem(w *world.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushReleases()
}
