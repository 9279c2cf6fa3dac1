package system

import (
	"time"

	"github.com/gridfort/sim/internal/core/event"
	coresys "github.com/gridfort/sim/internal/core/system"
)

// DispatchSystem rotates the event bus buffers and delivers last tick's
// events. Phase 0 (Dispatch) — runs before anything else each tick.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
