package system

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gridfort/sim/internal/core/event"
	coresys "github.com/gridfort/sim/internal/core/system"
	"github.com/gridfort/sim/internal/data"
	"github.com/gridfort/sim/internal/world"
)

type waveState int

const (
	waveSpawning waveState = iota // draining the current wave's groups
	waveWaiting                   // inter-wave delay running
	waveDone                      // stop-after-last policy, nothing left
)

// WaveSystem walks the ordered wave definitions: drains each wave's spawn
// groups in order on their per-spawn delays, waits the inter-wave delay, and
// proceeds. After the last wave it wraps to the first with a bumped cycle
// (endless mode) or stops, per config. Spawn times accumulate from scheduled
// times rather than tick times, so cadence doesn't drift with tick rate.
// Phase 1 (Spawn).
type WaveSystem struct {
	world   *world.World
	log     *zap.Logger
	waves   []data.WaveDef
	endless bool

	state          waveState
	started        bool
	waveIdx        int // index into waves
	cycle          int // completed passes over the wave list
	waveNumber     int // 1-based, keeps counting across cycles
	groupIdx       int
	spawnedInGroup int
	nextSpawnAt    float64
	nextWaveAt     float64
	wavesCompleted int
}

func NewWaveSystem(w *world.World, waves []data.WaveDef, endless bool, log *zap.Logger) *WaveSystem {
	return &WaveSystem{
		world:   w,
		log:     log,
		waves:   waves,
		endless: endless,
	}
}

func (s *WaveSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *WaveSystem) WavesCompleted() int { return s.wavesCompleted }
func (s *WaveSystem) WaveNumber() int     { return s.waveNumber }
func (s *WaveSystem) Cycle() int          { return s.cycle }

func (s *WaveSystem) Update(_ time.Duration) {
	if s.state == waveDone || len(s.waves) == 0 {
		return
	}
	now := s.world.Now()

	if !s.started {
		s.started = true
		s.startWave(now)
	}

	if s.state == waveWaiting && now >= s.nextWaveAt {
		s.advanceWave(s.nextWaveAt)
	}

	for s.state == waveSpawning && now >= s.nextSpawnAt {
		s.spawnNext()
	}
}

func (s *WaveSystem) startWave(at float64) {
	s.waveNumber++
	s.groupIdx = 0
	s.spawnedInGroup = 0
	s.nextSpawnAt = at
	s.state = waveSpawning
	s.world.SetCycle(s.cycle)
	event.Emit(s.world.Bus, event.WaveStarted{Number: s.waveNumber, Cycle: s.cycle})
	s.log.Info("wave started",
		zap.Int("wave", s.waveNumber),
		zap.Int("cycle", s.cycle))
}

// spawnNext performs one scheduled spawn and advances the group cursor.
// A failed acquire (pool exhausted, bad tag) skips that spawn and moves on —
// the wave never blocks on the pool.
func (s *WaveSystem) spawnNext() {
	wave := s.waves[s.waveIdx]
	g := wave.Groups[s.groupIdx]

	if _, err := s.world.SpawnEnemy(g.Enemy); err != nil {
		if errors.Is(err, world.ErrPoolExhausted) {
			s.log.Warn("spawn skipped, pool exhausted", zap.String("tag", g.Enemy))
		} else {
			s.log.Warn("spawn skipped", zap.String("tag", g.Enemy), zap.Error(err))
		}
	}

	s.spawnedInGroup++
	if s.spawnedInGroup >= g.Count {
		s.groupIdx++
		s.spawnedInGroup = 0
	}

	if s.groupIdx >= len(wave.Groups) {
		// Wave fully dispatched; inter-wave delay runs from the last
		// scheduled spawn time.
		s.state = waveWaiting
		s.nextWaveAt = s.nextSpawnAt + wave.InterWaveDelay
		s.wavesCompleted++
		event.Emit(s.world.Bus, event.WaveEnded{Number: s.waveNumber})
		return
	}

	// The next spawn's delay belongs to the group it comes from.
	s.nextSpawnAt += wave.Groups[s.groupIdx].SpawnDelay
}

func (s *WaveSystem) advanceWave(at float64) {
	s.waveIdx++
	if s.waveIdx >= len(s.waves) {
		if !s.endless {
			s.state = waveDone
			s.log.Info("all waves dispatched", zap.Int("waves", s.wavesCompleted))
			return
		}
		s.waveIdx = 0
		s.cycle++
	}
	s.startWave(at)
}
