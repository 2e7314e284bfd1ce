package metrics

import "github.com/powerlab/steamsim/internal/plant"

// Metric observes snapshots during a run and reduces them to one
// number for the results table.
type Metric interface {
	Name() string
	Observe(s plant.SystemState, t float64)
	Value() float64
	Reset()
}

type PeakLoad struct {
	peak float64
}

func NewPeakLoad() *PeakLoad { return &PeakLoad{} }

func (m *PeakLoad) Name() string { return "peak_load_mw" }

func (m *PeakLoad) Observe(s plant.SystemState, t float64) {
	if s.Load > m.peak {
		m.peak = s.Load
	}
}

func (m *PeakLoad) Value() float64 { return m.peak }
func (m *PeakLoad) Reset()         { m.peak = 0 }

type AverageEfficiency struct {
	sum     float64
	samples int
}

func NewAverageEfficiency() *AverageEfficiency { return &AverageEfficiency{} }

func (m *AverageEfficiency) Name() string { return "avg_thermal_eff" }

func (m *AverageEfficiency) Observe(s plant.SystemState, t float64) {
	if s.Load > 0 {
		m.sum += s.ThermalEfficiency
		m.samples++
	}
}

func (m *AverageEfficiency) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *AverageEfficiency) Reset() {
	m.sum = 0
	m.samples = 0
}

// EnergyGenerated integrates load over observed time into MWh.
type EnergyGenerated struct {
	mwh   float64
	lastT float64
	seen  bool
}

func NewEnergyGenerated() *EnergyGenerated { return &EnergyGenerated{} }

func (m *EnergyGenerated) Name() string { return "energy_mwh" }

func (m *EnergyGenerated) Observe(s plant.SystemState, t float64) {
	if m.seen && t > m.lastT {
		m.mwh += s.Load * (t - m.lastT) / 3600
	}
	m.lastT = t
	m.seen = true
}

func (m *EnergyGenerated) Value() float64 { return m.mwh }

func (m *EnergyGenerated) Reset() {
	m.mwh = 0
	m.lastT = 0
	m.seen = false
}

// TripCount counts rising edges of the trip flag.
type TripCount struct {
	count   int
	tripped bool
}

func NewTripCount() *TripCount { return &TripCount{} }

func (m *TripCount) Name() string { return "trips" }

func (m *TripCount) Observe(s plant.SystemState, t float64) {
	if s.Tripped && !m.tripped {
		m.count++
	}
	m.tripped = s.Tripped
}

func (m *TripCount) Value() float64 { return float64(m.count) }

func (m *TripCount) Reset() {
	m.count = 0
	m.tripped = false
}

// Defaults is the metric set the headless runner attaches.
func Defaults() []Metric {
	return []Metric{NewPeakLoad(), NewAverageEfficiency(), NewEnergyGenerated(), NewTripCount()}
}
