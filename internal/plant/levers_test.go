package plant

import (
	"math"
	"testing"
)

func TestRegistryHasAllChannels(t *testing.T) {
	r := NewRegistry()
	for _, id := range LeverOrder {
		l, ok := r.Get(id)
		if !ok {
			t.Fatalf("missing lever %s", id)
		}
		if l.Min != 0 || l.Max != 100 {
			t.Errorf("%s: unexpected range [%f, %f]", id, l.Min, l.Max)
		}
		if l.Current != l.Target {
			t.Errorf("%s: fresh lever not at its target (%f vs %f)", id, l.Current, l.Target)
		}
	}
}

func TestSetTargetClamps(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		in   float64
		want float64
	}{
		{50, 50},
		{-10, 0},
		{150, 100},
		{0, 0},
		{100, 100},
	}
	for _, c := range cases {
		if err := r.SetTarget(LeverCoalFeed, c.in); err != nil {
			t.Fatalf("SetTarget(%f): %v", c.in, err)
		}
		l, _ := r.Get(LeverCoalFeed)
		if l.Target != c.want {
			t.Errorf("SetTarget(%f): target %f, want %f", c.in, l.Target, c.want)
		}
	}
}

func TestSetTargetUnknownLever(t *testing.T) {
	r := NewRegistry()
	if err := r.SetTarget("afterburner", 50); err == nil {
		t.Fatal("expected error for unknown lever")
	}
}

func TestAdvanceMovesTowardTarget(t *testing.T) {
	linear := func(current, target, rate, dt float64) float64 {
		return current + (target-current)*math.Min(rate*dt, 1)
	}

	r := NewRegistry()
	r.SetTarget(LeverCoalFeed, 80)

	prev := 0.0
	for i := 0; i < 100; i++ {
		r.Advance(1.0, linear)
		l, _ := r.Get(LeverCoalFeed)
		if l.Current < prev || l.Current > 80 {
			t.Fatalf("tick %d: current %f left [%f, 80]", i, l.Current, prev)
		}
		prev = l.Current
	}
	if math.Abs(prev-80) > 1 {
		t.Errorf("lever did not converge: %f", prev)
	}
}

func TestAdvanceIgnoresBadDt(t *testing.T) {
	r := NewRegistry()
	r.SetTarget(LeverCoalFeed, 80)

	r.Advance(0, func(c, tg, rate, dt float64) float64 { return 999 })
	r.Advance(-1, func(c, tg, rate, dt float64) float64 { return 999 })

	l, _ := r.Get(LeverCoalFeed)
	if l.Current != 0 {
		t.Errorf("lever moved on invalid dt: %f", l.Current)
	}
}

func TestValuesSnapshotIsDetached(t *testing.T) {
	r := NewRegistry()
	lv := r.Values()
	lv[LeverCoalFeed] = 77

	l, _ := r.Get(LeverCoalFeed)
	if l.Current != 0 {
		t.Error("mutating the snapshot reached the registry")
	}
}

func TestFractionClamps(t *testing.T) {
	lv := LeverValues{LeverCoalFeed: 250, LeverAirSupply: -40, LeverFeedwater: 30}

	if f := lv.Fraction(LeverCoalFeed); f != 1 {
		t.Errorf("over-range fraction = %f, want 1", f)
	}
	if f := lv.Fraction(LeverAirSupply); f != 0 {
		t.Errorf("under-range fraction = %f, want 0", f)
	}
	if f := lv.Fraction(LeverFeedwater); f != 0.3 {
		t.Errorf("fraction = %f, want 0.3", f)
	}
	if f := lv.Fraction(LeverSteamFlow); f != 0 {
		t.Errorf("missing channel fraction = %f, want 0", f)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	r := NewRegistry()
	r.SetTarget(LeverCoalFeed, 90)
	r.Advance(100, func(c, tg, rate, dt float64) float64 { return tg })

	r.Reset()

	want := NewRegistry()
	for _, id := range LeverOrder {
		got, _ := r.Get(id)
		ref, _ := want.Get(id)
		if got.Current != ref.Current || got.Target != ref.Target {
			t.Errorf("%s: got %f/%f, want %f/%f", id, got.Current, got.Target, ref.Current, ref.Target)
		}
	}
}

func TestEachVisitsPanelOrder(t *testing.T) {
	r := NewRegistry()
	var seen []LeverID
	r.Each(func(l *Lever) { seen = append(seen, l.ID) })

	if len(seen) != len(LeverOrder) {
		t.Fatalf("visited %d levers, want %d", len(seen), len(LeverOrder))
	}
	for i, id := range LeverOrder {
		if seen[i] != id {
			t.Errorf("position %d: got %s, want %s", i, seen[i], id)
		}
	}
}
