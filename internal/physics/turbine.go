package physics

import "math"

type turbineResult struct {
	Speed     float64
	Load      float64
	Frequency float64

	TargetSpeed float64
	TargetLoad  float64
	MechPower   float64 // MW
}

// turbineStage converts boiler steam into shaft power and electrical
// load. A steam flow of zero gives zero mechanical power and both
// speed and load coast down through the same smoothing as spin-up.
func (e *Engine) turbineStage(in stageInputs, boiler boilerResult, prev primaries, dt float64) turbineResult {
	p := e.Params

	// specific work from a linear enthalpy approximation against the
	// condenser back-pressure reference
	specificWork := p.EnthalpyPerDegC * (boiler.Temp - p.CondenserRefTemp) // kJ/kg
	if specificWork < 0 {
		specificWork = 0
	}

	throttleTerm := p.ThrottleFloorTerm + (1-p.ThrottleFloorTerm)*math.Min(in.Throttle/0.9, 1)
	pressureTerm := math.Min(1, boiler.Pressure/p.RatedPressure)
	efficiency := p.TurbineBaseEff * throttleTerm * pressureTerm

	massFlow := boiler.Flow / 3.6 // t/h -> kg/s
	mechPower := massFlow * specificWork * efficiency * in.Throttle / 1000

	targetSpeed := p.RatedSpeed * mechPower / p.RatedCapacity
	targetSpeed = clamp(targetSpeed, 0, p.MaxSpeedClamp)
	newSpeed := clamp(Approach(prev.Speed, targetSpeed, p.SpeedRate, dt), 0, p.MaxSpeedClamp)

	targetLoad := math.Min(mechPower*p.GeneratorEff, in.FlowControl*p.RatedCapacity)
	targetLoad = clamp(targetLoad, 0, p.RatedCapacity)
	newLoad := clamp(Approach(prev.Load, targetLoad, p.LoadRate, dt), 0, p.RatedCapacity)

	frequency := p.GridFrequency + (newSpeed-p.RatedSpeed)*p.FrequencyPerRPM

	return turbineResult{
		Speed:       newSpeed,
		Load:        newLoad,
		Frequency:   frequency,
		TargetSpeed: targetSpeed,
		TargetLoad:  targetLoad,
		MechPower:   mechPower,
	}
}
