package session

import (
	"context"
	"fmt"

	"github.com/powerlab/steamsim/internal/plant"
)

// RunConfig describes a headless scenario run.
type RunConfig struct {
	Dt       float64
	Duration float64
	Levers   map[plant.LeverID]float64 // targets applied at t=0
}

type Result struct {
	Times   []float64
	States  []plant.SystemState
	Metrics map[string]float64
}

func (c RunConfig) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	return nil
}

// RunHeadless executes a fixed-dt scenario without any UI: lever
// targets are set once, then the engine ticks until the duration is
// covered or the context is canceled.
func (s *Session) RunHeadless(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	for id, v := range cfg.Levers {
		if err := s.SetLeverTarget(id, v); err != nil {
			return nil, fmt.Errorf("lever %s: %w", id, err)
		}
	}

	if err := s.Start(); err != nil {
		return nil, err
	}
	defer s.Stop()

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:  make([]float64, 0, steps+1),
		States: make([]plant.SystemState, 0, steps+1),
	}

	snap := s.Snapshot()
	result.Times = append(result.Times, 0)
	result.States = append(result.States, snap)

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Advance(cfg.Dt)
		t += cfg.Dt

		snap = s.Snapshot()
		result.Times = append(result.Times, t)
		result.States = append(result.States, snap)

		if !snap.IsValid() {
			return result, fmt.Errorf("invalid state at t=%.4f", t)
		}
	}

	result.Metrics = s.MetricValues()
	return result, nil
}
