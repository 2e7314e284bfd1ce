package plant

import "fmt"

type LeverID string

const (
	LeverCoalFeed       LeverID = "coal_feed"
	LeverFeedwater      LeverID = "feedwater"
	LeverBoilerPressure LeverID = "boiler_pressure"
	LeverSteamTurbine   LeverID = "steam_turbine"
	LeverCondenser      LeverID = "condenser"
	LeverCoolingWater   LeverID = "cooling_water"
	LeverAirSupply      LeverID = "air_supply"
	LeverFuelInjection  LeverID = "fuel_injection"
	LeverSteamFlow      LeverID = "steam_flow"
	LeverWaterLevel     LeverID = "water_level"
	LeverExhaustGas     LeverID = "exhaust_gas"
	LeverEmergencyValve LeverID = "emergency_valve"
)

// LeverOrder is the fixed panel order used by the registry, the TUI
// and CSV exports.
var LeverOrder = []LeverID{
	LeverCoalFeed,
	LeverFeedwater,
	LeverBoilerPressure,
	LeverSteamTurbine,
	LeverCondenser,
	LeverCoolingWater,
	LeverAirSupply,
	LeverFuelInjection,
	LeverSteamFlow,
	LeverWaterLevel,
	LeverExhaustGas,
	LeverEmergencyValve,
}

type Lever struct {
	ID           LeverID
	Label        string
	Min          float64
	Max          float64
	Current      float64
	Target       float64
	ResponseTime float64 // seconds to approach a new target
	Sensitivity  float64
}

func (l *Lever) clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// SetTarget clamps into [Min, Max] before storing; out-of-range
// commands are never rejected.
func (l *Lever) SetTarget(v float64) {
	l.Target = l.clamp(v)
}

// Fraction maps Current into [0, 1].
func (l *Lever) Fraction() float64 {
	if l.Max == l.Min {
		return 0
	}
	return (l.Current - l.Min) / (l.Max - l.Min)
}

// LeverValues is the engine-facing input vector: one percentage per
// channel, sampled from lever Current values at tick time.
type LeverValues map[LeverID]float64

// Fraction returns the channel value as a 0-1 fraction, clamped.
func (lv LeverValues) Fraction(id LeverID) float64 {
	v := lv[id] / 100.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Registry holds the twelve control channels of the plant.
type Registry struct {
	levers map[LeverID]*Lever
}

func defaultLever(id LeverID, label string, initial, responseTime, sensitivity float64) *Lever {
	return &Lever{
		ID:           id,
		Label:        label,
		Min:          0,
		Max:          100,
		Current:      initial,
		Target:       initial,
		ResponseTime: responseTime,
		Sensitivity:  sensitivity,
	}
}

func NewRegistry() *Registry {
	r := &Registry{levers: make(map[LeverID]*Lever, len(LeverOrder))}
	add := func(l *Lever) { r.levers[l.ID] = l }

	add(defaultLever(LeverCoalFeed, "coal feed", 0, 8.0, 1.0))
	add(defaultLever(LeverFeedwater, "feedwater", 30, 5.0, 1.0))
	add(defaultLever(LeverBoilerPressure, "boiler pressure", 50, 6.0, 0.8))
	add(defaultLever(LeverSteamTurbine, "turbine throttle", 0, 4.0, 1.2))
	add(defaultLever(LeverCondenser, "condenser", 50, 5.0, 0.8))
	add(defaultLever(LeverCoolingWater, "cooling water", 50, 3.0, 1.0))
	add(defaultLever(LeverAirSupply, "air supply", 0, 3.0, 1.5))
	add(defaultLever(LeverFuelInjection, "fuel injection", 0, 2.0, 1.5))
	add(defaultLever(LeverSteamFlow, "steam flow", 0, 4.0, 1.0))
	add(defaultLever(LeverWaterLevel, "water level", 50, 10.0, 0.5))
	add(defaultLever(LeverExhaustGas, "exhaust gas", 50, 4.0, 0.8))
	add(defaultLever(LeverEmergencyValve, "emergency valve", 0, 1.0, 2.0))

	return r
}

func (r *Registry) Get(id LeverID) (*Lever, bool) {
	l, ok := r.levers[id]
	return l, ok
}

func (r *Registry) SetTarget(id LeverID, value float64) error {
	l, ok := r.levers[id]
	if !ok {
		return fmt.Errorf("unknown lever: %s", id)
	}
	l.SetTarget(value)
	return nil
}

// Advance smooths every lever's Current toward its Target. The
// smoothing primitive is injected so all inertia in the plant runs
// through the same function.
func (r *Registry) Advance(dt float64, approach func(current, target, rate, dt float64) float64) {
	if dt <= 0 {
		return
	}
	for _, l := range r.levers {
		rate := 1.0
		if l.ResponseTime > 0 {
			rate = 1.0 / l.ResponseTime
		}
		l.Current = l.clamp(approach(l.Current, l.Target, rate, dt))
	}
}

// Values samples the current positions into an engine input vector.
func (r *Registry) Values() LeverValues {
	lv := make(LeverValues, len(r.levers))
	for id, l := range r.levers {
		lv[id] = l.Current
	}
	return lv
}

// Reset snaps every lever back to its construction position.
func (r *Registry) Reset() {
	fresh := NewRegistry()
	for id, l := range r.levers {
		f := fresh.levers[id]
		l.Current = f.Current
		l.Target = f.Target
	}
}

// Each visits levers in panel order.
func (r *Registry) Each(fn func(*Lever)) {
	for _, id := range LeverOrder {
		fn(r.levers[id])
	}
}
