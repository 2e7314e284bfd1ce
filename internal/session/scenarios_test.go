package session_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/powerlab/steamsim/internal/config"
	"github.com/powerlab/steamsim/internal/metrics"
	"github.com/powerlab/steamsim/internal/physics"
	"github.com/powerlab/steamsim/internal/plant"
	"github.com/powerlab/steamsim/internal/session"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scenario Suite")
}

func newSession() *session.Session {
	s := session.New(physics.DefaultParams())
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	return s
}

func runPreset(name string, duration float64) *session.Result {
	cfg := config.GetPreset(name)
	Expect(cfg).NotTo(BeNil())

	s := newSession()
	res, err := s.RunHeadless(context.Background(), session.RunConfig{
		Dt:       cfg.Dt,
		Duration: duration,
		Levers:   cfg.LeverTargets(),
	})
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("cold standby", func() {
	var res *session.Result

	BeforeEach(func() {
		zero := make(map[plant.LeverID]float64, len(plant.LeverOrder))
		for _, id := range plant.LeverOrder {
			zero[id] = 0
		}
		s := newSession()
		var err error
		res, err = s.RunHeadless(context.Background(), session.RunConfig{
			Dt: 1.0, Duration: 100, Levers: zero,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("generates nothing", func() {
		for _, st := range res.States {
			Expect(st.Load).To(BeZero())
			Expect(st.TurbineSpeed).To(BeZero())
			Expect(st.TotalEarnings).To(BeZero())
		}
	})

	It("cools down monotonically without tripping", func() {
		prev := res.States[0].MainSteamTemp
		for _, st := range res.States[1:] {
			Expect(st.MainSteamTemp).To(BeNumerically("<=", prev))
			Expect(st.Tripped).To(BeFalse())
			prev = st.MainSteamTemp
		}
		Expect(res.Metrics["trips"]).To(BeZero())
	})
})

var _ = Describe("full load", func() {
	var res *session.Result

	BeforeEach(func() {
		res = runPreset("full_load", 600)
	})

	It("settles at a steady positive load without tripping", func() {
		final := res.States[len(res.States)-1]
		Expect(final.Tripped).To(BeFalse())
		Expect(final.Load).To(BeNumerically(">", 50))
		Expect(final.Load).To(BeNumerically("<", 600))
		Expect(res.Metrics["trips"]).To(BeZero())
	})

	It("keeps every reading inside its physical range", func() {
		p := physics.DefaultParams()
		for _, st := range res.States {
			Expect(st.MainSteamTemp).To(BeNumerically("<=", p.MaxBoilerTemp))
			Expect(st.MainSteamFlow).To(BeNumerically("<=", p.MaxSteamFlow))
			Expect(st.TurbineSpeed).To(BeNumerically("<=", p.MaxSpeedClamp))
			Expect(st.ThermalEfficiency).To(BeNumerically("<=", 0.48))
			Expect(st.DrumLevel).To(BeNumerically("~", 0, p.DrumLevelBand))
		}
	})

	It("accrues revenue proportional to generation", func() {
		p := physics.DefaultParams()
		final := res.States[len(res.States)-1]
		Expect(final.TotalEarnings).To(BeNumerically(">", 0))
		Expect(final.TotalEarnings).To(Equal(final.Load * p.RevenueRate * final.RunSeconds / 3600))
		Expect(res.Metrics["energy_mwh"]).To(BeNumerically(">", 0))
		Expect(res.Metrics["peak_load_mw"]).To(BeNumerically(">=", final.Load))
	})
})

var _ = Describe("overfiring", func() {
	var res *session.Result

	BeforeEach(func() {
		res = runPreset("overfire", 600)
	})

	It("trips on boiler overtemperature and latches", func() {
		final := res.States[len(res.States)-1]
		Expect(final.Tripped).To(BeTrue())
		Expect(final.TripCause).To(Equal(plant.TripOverTemp))
		Expect(res.Metrics["trips"]).To(Equal(1.0))

		tripped := false
		for _, st := range res.States {
			if tripped {
				Expect(st.Tripped).To(BeTrue(), "trip must latch")
			}
			tripped = tripped || st.Tripped
		}
	})

	It("runs the boiler down after the trip", func() {
		var tripIdx int
		for i, st := range res.States {
			if st.Tripped {
				tripIdx = i
				break
			}
		}
		Expect(tripIdx).To(BeNumerically(">", 0))

		peak := res.States[tripIdx].MainSteamTemp
		final := res.States[len(res.States)-1]
		Expect(final.MainSteamTemp).To(BeNumerically("<", peak))
		Expect(final.Load).To(BeNumerically("<", res.States[tripIdx].Load))
	})
})

var _ = Describe("starved air", func() {
	It("burns worse than on-ratio firing", func() {
		lean := runPreset("starved_air", 600)
		full := runPreset("full_load", 600)

		leanFinal := lean.States[len(lean.States)-1]
		fullFinal := full.States[len(full.States)-1]

		Expect(leanFinal.CombustionEfficiency).To(BeNumerically("<", fullFinal.CombustionEfficiency))
		Expect(leanFinal.Load).To(BeNumerically("<", fullFinal.Load))
		Expect(leanFinal.CO2Rate).To(BeNumerically(">", 0))
	})
})

var _ = Describe("commanded shutdown", func() {
	var s *session.Session
	p := physics.DefaultParams()

	BeforeEach(func() {
		s = newSession()
		cfg := config.GetPreset("full_load")
		for id, v := range cfg.LeverTargets() {
			Expect(s.SetLeverTarget(id, v)).To(Succeed())
		}
		Expect(s.Start()).To(Succeed())
		for i := 0; i < 300; i++ {
			s.Advance(1.0)
		}
		Expect(s.Snapshot().Load).To(BeNumerically(">", 0))
	})

	It("runs the unit down over the countdown and holds", func() {
		Expect(s.Shutdown()).To(Succeed())

		prev := s.Snapshot()
		Expect(prev.ShutdownRemaining).To(Equal(p.ShutdownSeconds))

		for i := 0; i < int(p.ShutdownSeconds); i++ {
			s.Advance(1.0)
			cur := s.Snapshot()
			Expect(cur.Load).To(BeNumerically("<=", prev.Load))
			Expect(cur.TurbineSpeed).To(BeNumerically("<=", prev.TurbineSpeed))
			Expect(cur.MainSteamFlow).To(BeNumerically("<=", prev.MainSteamFlow))
			Expect(cur.Tripped).To(BeTrue())
			// panel readings follow the rundown, not the pre-shutdown state
			Expect(cur.Frequency).To(BeNumerically("~",
				p.GridFrequency+(cur.TurbineSpeed-p.RatedSpeed)*p.FrequencyPerRPM, 1e-9))
			prev = cur
		}
		Expect(prev.ShutdownRemaining).To(BeZero())

		s.Advance(1.0)
		held := s.Snapshot()
		Expect(held.Load).To(Equal(prev.Load))
		Expect(held.Tripped).To(BeTrue())
	})

	It("only recovers through reset", func() {
		Expect(s.Shutdown()).To(Succeed())
		for i := 0; i < 20; i++ {
			s.Advance(1.0)
		}
		Expect(s.Snapshot().Tripped).To(BeTrue())

		s.Reset()
		Expect(s.Snapshot()).To(Equal(plant.Baseline()))
		Expect(s.Snapshot().Tripped).To(BeFalse())
	})
})
