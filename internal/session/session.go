package session

import (
	"errors"
	"sync"
	"time"

	"github.com/powerlab/steamsim/internal/metrics"
	"github.com/powerlab/steamsim/internal/physics"
	"github.com/powerlab/steamsim/internal/plant"
	"github.com/powerlab/steamsim/internal/revenue"
)

var (
	ErrAlreadyRunning = errors.New("session: already running")
	ErrNotRunning     = errors.New("session: not running")
	ErrUnknownLever   = errors.New("session: unknown lever")
)

// maxStepSeconds caps wall-clock dt so a scheduler stall cannot jump
// the physics by a huge slice.
const maxStepSeconds = 1.0

// Session owns one simulated unit: the lever registry, the current
// snapshot and the clock. Exactly one writer advances the state; all
// reads go through value copies taken under the lock.
type Session struct {
	mu       sync.Mutex
	engine   *physics.Engine
	levers   *plant.Registry
	state    plant.SystemState
	meter    revenue.Meter
	observed []metrics.Metric
	lastTick time.Time
}

func New(p physics.Params) *Session {
	return &Session{
		engine: physics.NewEngine(p),
		levers: plant.NewRegistry(),
		state:  plant.Baseline(),
		meter:  revenue.NewMeter(p.RevenueRate),
	}
}

func (s *Session) AddMetric(m metrics.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observed = append(s.observed, m)
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Running {
		return ErrAlreadyRunning
	}
	s.state.Running = true
	s.lastTick = time.Time{}
	return nil
}

func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Running {
		return ErrNotRunning
	}
	s.state.Running = false
	return nil
}

// Shutdown starts the timed rundown. The trip flag asserts
// immediately and stays asserted after the countdown expires; only
// Reset clears it.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Running {
		return ErrNotRunning
	}
	s.state.Tripped = true
	s.state.TripCause = plant.TripShutdown
	s.state.ShutdownRemaining = s.engine.Params.ShutdownSeconds
	return nil
}

// Reset is the only way out of a tripped or shut-down unit: the
// snapshot and the levers return to their fixed baseline.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = plant.Baseline()
	s.levers.Reset()
	s.lastTick = time.Time{}
	for _, m := range s.observed {
		m.Reset()
	}
}

func (s *Session) SetLeverTarget(id plant.LeverID, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.levers.SetTarget(id, value); err != nil {
		return ErrUnknownLever
	}
	return nil
}

// Tick advances the plant using the wall clock. The first tick after
// Start only arms the clock.
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Running {
		return
	}
	if s.lastTick.IsZero() {
		s.lastTick = now
		return
	}
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if dt <= 0 {
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}
	s.advanceLocked(dt)
}

// Advance steps by an explicit dt, for tests and headless runs.
func (s *Session) Advance(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Running || dt <= 0 {
		return
	}
	s.advanceLocked(dt)
}

func (s *Session) advanceLocked(dt float64) {
	s.levers.Advance(dt, physics.Approach)
	s.state = s.engine.Step(s.levers.Values(), s.state, dt)
	s.state.TotalEarnings = s.meter.Earnings(s.state.Load, s.state.RunSeconds)
	for _, m := range s.observed {
		m.Observe(s.state, s.state.RunSeconds)
	}
}

// Snapshot returns a read-only copy for rendering.
func (s *Session) Snapshot() plant.SystemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Levers copies the registry in panel order for rendering.
func (s *Session) Levers() []plant.Lever {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]plant.Lever, 0, len(plant.LeverOrder))
	s.levers.Each(func(l *plant.Lever) {
		out = append(out, *l)
	})
	return out
}

func (s *Session) Params() physics.Params {
	return s.engine.Params
}

func (s *Session) MetricValues() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals := make(map[string]float64, len(s.observed))
	for _, m := range s.observed {
		vals[m.Name()] = m.Value()
	}
	return vals
}
