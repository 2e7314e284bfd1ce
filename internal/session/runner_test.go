package session

import (
	"context"
	"testing"

	"github.com/powerlab/steamsim/internal/physics"
	"github.com/powerlab/steamsim/internal/plant"
)

func TestRunHeadlessValidation(t *testing.T) {
	s := New(physics.DefaultParams())

	cases := []RunConfig{
		{Dt: 0, Duration: 10},
		{Dt: -1, Duration: 10},
		{Dt: 1, Duration: 0},
		{Dt: 1, Duration: -5},
	}
	for _, cfg := range cases {
		if _, err := s.RunHeadless(context.Background(), cfg); err == nil {
			t.Errorf("dt=%f duration=%f: expected error", cfg.Dt, cfg.Duration)
		}
	}
}

func TestRunHeadlessUnknownLever(t *testing.T) {
	s := New(physics.DefaultParams())
	_, err := s.RunHeadless(context.Background(), RunConfig{
		Dt: 1, Duration: 10,
		Levers: map[plant.LeverID]float64{"afterburner": 50},
	})
	if err == nil {
		t.Fatal("expected error for unknown lever")
	}
}

func TestRunHeadlessShape(t *testing.T) {
	s := New(physics.DefaultParams())
	res, err := s.RunHeadless(context.Background(), RunConfig{
		Dt: 1, Duration: 60,
		Levers: map[plant.LeverID]float64{
			plant.LeverCoalFeed:  80,
			plant.LeverAirSupply: 80,
		},
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	// initial snapshot plus one per step
	if len(res.Times) != 61 || len(res.States) != 61 {
		t.Fatalf("got %d/%d samples, want 61", len(res.Times), len(res.States))
	}
	if res.Times[0] != 0 || res.Times[60] != 60 {
		t.Errorf("time axis off: [%f, %f]", res.Times[0], res.Times[60])
	}
	if res.States[60].MainSteamTemp <= res.States[0].MainSteamTemp {
		t.Error("firing did not raise steam temperature")
	}

	// the runner stops the session when done
	if s.Snapshot().Running {
		t.Error("session left running")
	}
}

func TestRunHeadlessContextCancel(t *testing.T) {
	s := New(physics.DefaultParams())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.RunHeadless(ctx, RunConfig{Dt: 1, Duration: 600})
	if err == nil {
		t.Fatal("expected context error")
	}
	if res == nil || len(res.States) != 1 {
		t.Fatalf("expected only the initial snapshot, got %v", res)
	}
}
