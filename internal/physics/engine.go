package physics

import (
	"math"

	"github.com/powerlab/steamsim/internal/plant"
)

// Engine is the pure state-transition function of the unit. It holds
// parameters only; all simulation state lives in the SystemState
// passed through Step.
type Engine struct {
	Params Params
}

func NewEngine(p Params) *Engine {
	return &Engine{Params: p}
}

// primaries bundles the inertial fields handed from stage to stage.
type primaries struct {
	Flow     float64
	Pressure float64
	Temp     float64
	Speed    float64
	Load     float64
}

// stageInputs are the effective lever fractions for one tick. When
// protection has fired, fuel and throttle are zeroed here while the
// operator's raw lever positions stay untouched for display.
type stageInputs struct {
	Fuel        float64
	Air         float64
	Injection   float64
	Throttle    float64
	FlowControl float64
	Feedwater   float64
	Cooling     float64
	Condenser   float64
	WaterLevel  float64
	PressureSet float64
	Relief      float64
	Exhaust     float64
}

// Diagnostics exposes the pre-smoothing stage targets.
type Diagnostics struct {
	TargetTemp     float64
	TargetPressure float64
	TargetFlow     float64
	TargetSpeed    float64
	TargetLoad     float64
	MechPower      float64
	HeatInput      float64
}

func (e *Engine) inputs(lv plant.LeverValues, tripped bool) stageInputs {
	in := stageInputs{
		Fuel:        lv.Fraction(plant.LeverCoalFeed),
		Air:         lv.Fraction(plant.LeverAirSupply),
		Injection:   lv.Fraction(plant.LeverFuelInjection),
		Throttle:    lv.Fraction(plant.LeverSteamTurbine),
		FlowControl: lv.Fraction(plant.LeverSteamFlow),
		Feedwater:   lv.Fraction(plant.LeverFeedwater),
		Cooling:     lv.Fraction(plant.LeverCoolingWater),
		Condenser:   lv.Fraction(plant.LeverCondenser),
		WaterLevel:  lv.Fraction(plant.LeverWaterLevel),
		PressureSet: lv.Fraction(plant.LeverBoilerPressure),
		Relief:      lv.Fraction(plant.LeverEmergencyValve),
		Exhaust:     lv.Fraction(plant.LeverExhaustGas),
	}
	if tripped {
		in.Fuel = 0
		in.Injection = 0
		in.Throttle = 0
	}
	return in
}

// Step advances the plant by dt seconds. It is pure: the previous
// state is taken by value and a new snapshot is returned. An invalid
// dt (zero, negative, NaN, Inf) is a caller error and yields the
// input state unchanged.
func (e *Engine) Step(lv plant.LeverValues, prev plant.SystemState, dt float64) plant.SystemState {
	next, _ := e.StepDiag(lv, prev, dt)
	return next
}

// StepDiag is Step plus the pre-smoothing stage targets.
func (e *Engine) StepDiag(lv plant.LeverValues, prev plant.SystemState, dt float64) (plant.SystemState, Diagnostics) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return prev, Diagnostics{}
	}

	in := e.inputs(lv, prev.Tripped)

	// commanded shutdown overrides the stages entirely
	if prev.TripCause == plant.TripShutdown {
		if prev.ShutdownRemaining <= 0 {
			return prev, Diagnostics{}
		}
		next := e.applyShutdownDecay(prev, dt)
		e.refreshRundownDerived(&next, in)
		if next.Running {
			next.RunSeconds += dt
		}
		return next, Diagnostics{}
	}

	pv := primaries{
		Flow:     prev.MainSteamFlow,
		Pressure: prev.MainSteamPressure,
		Temp:     prev.MainSteamTemp,
		Speed:    prev.TurbineSpeed,
		Load:     prev.Load,
	}

	boiler := e.boilerStage(in, pv, dt)
	turbine := e.turbineStage(in, boiler, pv, dt)
	water := e.waterStage(in, boiler, turbine)

	next := prev
	next.MainSteamFlow = boiler.Flow
	next.MainSteamPressure = boiler.Pressure
	next.MainSteamTemp = boiler.Temp
	next.TurbineSpeed = turbine.Speed
	next.Load = turbine.Load
	next.Frequency = turbine.Frequency
	next.CombustionEfficiency = boiler.CombustionEff
	next.AirFuelRatio = boiler.AirFuelRatio

	applyWater(&next, water)

	e.efficiencyIndicators(&next, boiler.HeatInput)
	e.deriveIndicators(&next, in)

	if next.Running {
		next.RunSeconds += dt
	}

	e.checkTrips(&next)

	diag := Diagnostics{
		TargetTemp:     boiler.TargetTemp,
		TargetPressure: boiler.TargetPressure,
		TargetFlow:     boiler.TargetFlow,
		TargetSpeed:    turbine.TargetSpeed,
		TargetLoad:     turbine.TargetLoad,
		MechPower:      turbine.MechPower,
		HeatInput:      boiler.HeatInput,
	}
	return next, diag
}

func applyWater(s *plant.SystemState, water waterResult) {
	s.CondensateFlow = water.CondensateFlow
	s.CirculatingWaterFlow = water.CirculatingWaterFlow
	s.CondenserVacuum = water.CondenserVacuum
	s.CondenserOutletTemp = water.CondenserOutletTemp
	s.CoolingWaterInTemp = water.CoolingWaterInTemp
	s.CoolingWaterOutTemp = water.CoolingWaterOutTemp
	s.FeedwaterFlow = water.FeedwaterFlow
	s.FeedwaterTemp = water.FeedwaterTemp
	s.FeedwaterPressure = water.FeedwaterPressure
	s.HPHeaterTemp = water.HPHeaterTemp
	s.LPHeaterTemp = water.LPHeaterTemp
	s.DrumLevel = water.DrumLevel
}

// refreshRundownDerived recomputes the full derived tail from the
// decayed primaries, so the panel tracks the rundown instead of
// holding the pre-shutdown readings. Firing has stopped, so the
// combustion figures match the zero-fuel boiler stage.
func (e *Engine) refreshRundownDerived(s *plant.SystemState, in stageInputs) {
	p := e.Params

	boiler := boilerResult{
		Temp:     s.MainSteamTemp,
		Pressure: s.MainSteamPressure,
		Flow:     s.MainSteamFlow,
	}
	turbine := turbineResult{
		Speed: s.TurbineSpeed,
		Load:  s.Load,
	}

	s.Frequency = p.GridFrequency + (s.TurbineSpeed-p.RatedSpeed)*p.FrequencyPerRPM
	s.CombustionEfficiency = p.MinCombustionEff
	s.AirFuelRatio = 0

	applyWater(s, e.waterStage(in, boiler, turbine))
	e.efficiencyIndicators(s, 0)
	e.deriveIndicators(s, in)
}

func (e *Engine) efficiencyIndicators(s *plant.SystemState, heatInput float64) {
	if heatInput <= Epsilon {
		s.ThermalEfficiency = 0
		s.HeatRate = 0
		return
	}
	s.ThermalEfficiency = clamp(s.Load/heatInput, 0, 0.48)
	if s.ThermalEfficiency > Epsilon {
		s.HeatRate = 3600 / s.ThermalEfficiency
	} else {
		s.HeatRate = 0
	}
}

// deriveIndicators recomputes the memoryless tail of the snapshot:
// flue gas, emissions and the auxiliary temperatures and levels. It
// runs in both normal and shutdown modes so the panel never shows
// stale values.
func (e *Engine) deriveIndicators(s *plant.SystemState, in stageInputs) {
	p := e.Params
	loadFrac := s.Load / p.RatedCapacity

	s.FlueGasTemp = clamp(120+s.MainSteamTemp*0.12, 20, 250)

	if in.Fuel > Epsilon {
		excess := math.Max(0, (s.AirFuelRatio-p.StoichRatio)/p.StoichRatio)
		s.FlueGasO2 = clamp(3+18*excess, 0.5, 21)

		dirty := 2 - s.CombustionEfficiency
		s.CO2Rate = in.Fuel * p.CO2Factor * dirty
		s.SO2Rate = in.Fuel * p.SO2Factor * (1 - in.Exhaust*p.ScrubberEff)
		s.NOxRate = in.Fuel * p.NOxFactor * (0.6 + 0.4*clamp(s.FlueGasTemp/200, 0, 1)) * (1 - in.Exhaust*p.ScrubberEff*0.5)
	} else {
		s.FlueGasO2 = 21
		s.CO2Rate = 0
		s.SO2Rate = 0
		s.NOxRate = 0
	}

	s.ReheatSteamTemp = clamp(s.MainSteamTemp*0.98, p.MinSteamTemp, p.MaxSteamTemp)
	s.GeneratorWindingTemp = clamp(40+loadFrac*60-in.Cooling*10, 20, 130)
	s.LubeOilTemp = clamp(35+s.TurbineSpeed/p.RatedSpeed*20, 20, 80)

	// deterministic consumption model: oil drains with load-hours
	loadHours := s.RunSeconds / 3600 * math.Max(loadFrac, 0.05)
	s.LubeOilTankLevel = clamp(100-loadHours*p.OilConsumption, 60, 100)

	overspeedMargin := math.Max(0, s.TurbineSpeed-p.RatedSpeed)
	s.BearingVibration = clamp(0.5+s.TurbineSpeed/p.RatedSpeed*1.5+overspeedMargin/100*1.5, 0, 25)
}
