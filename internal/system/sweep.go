package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/world"
)

// SweepSystem runs the registries' dead-entry sweep on a fixed interval, not
// every tick. It catches entities that died without unregistering (a missed
// callback) so registry growth stays bounded. Phase 3 (Sweep).
type SweepSystem struct {
	world    *world.World
	log      *zap.Logger
	interval time.Duration
	elapsed  time.Duration
}

func NewSweepSystem(w *world.World, interval time.Duration, log *zap.Logger) *SweepSystem {
	return &SweepSystem{world: w, log: log, interval: interval}
}

func (s *SweepSystem) Phase() coresys.Phase { return coresys.PhaseSweep }

func (s *SweepSystem) Update(dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0

	removed := s.world.Enemies.Sweep() + s.world.Towers.Sweep()
	if removed > 0 {
		s.log.Debug("registry sweep removed stale entries", zap.Int("count", removed))
	}
}
