package physics

import "math"

// boilerResult carries the smoothed primaries plus the pre-smoothing
// targets and combustion figures the later stages and tests need.
type boilerResult struct {
	Temp     float64
	Pressure float64
	Flow     float64

	TargetTemp     float64
	TargetPressure float64
	TargetFlow     float64

	CombustionEff float64
	AirFuelRatio  float64
	HeatInput     float64 // MW thermal
}

// boilerStage runs combustion, heat transfer and steam generation for
// one slice. fuel and air are effective fractions (already zeroed by
// the trip controller when protection has fired).
func (e *Engine) boilerStage(in stageInputs, prev primaries, dt float64) boilerResult {
	p := e.Params

	// no fuel means no ratio to report, not an enormous one
	ratio := 0.0
	if in.Fuel > Epsilon {
		ratio = in.Air * p.AirFuelSpan / in.Fuel
	}
	deviation := math.Abs(ratio-p.StoichRatio) / p.StoichRatio
	ratioEff := clamp(1-deviation*p.RatioPenalty, p.MinCombustionEff, 1)

	// partial-load penalty: low firing rates burn colder and dirtier
	loadTerm := 0.75 + 0.25*math.Min(in.Fuel/0.8, 1)
	combEff := ratioEff * loadTerm * (1 + p.InjectionBoost*in.Injection)
	combEff = clamp(combEff, p.MinCombustionEff, p.MaxCombustionEff)

	heatInput := in.Fuel * p.CoalCalorific * combEff
	heatLoss := p.HeatLossCoeff * prev.Temp
	netHeat := heatInput - heatLoss

	targetTemp := prev.Temp + netHeat/p.WaterHeatCapacity*dt
	targetTemp = clamp(targetTemp, p.MinSteamTemp, p.MaxSteamTemp)
	newTemp := clamp(Approach(prev.Temp, targetTemp, p.TempRate, dt), p.MinSteamTemp, p.MaxSteamTemp)

	saturation := p.SatPressureCoeff * math.Pow(newTemp/100, p.SatPressureExp)
	targetPressure := saturation * (1 + in.Fuel*p.PressureBoost)
	// drum setpoint authority and relief venting
	targetPressure *= 0.8 + 0.4*in.PressureSet
	targetPressure *= 1 - in.Relief*p.ReliefFactor
	targetPressure = clamp(targetPressure, p.MinSteamPressure, p.MaxSteamPressure)
	newPressure := clamp(Approach(prev.Pressure, targetPressure, p.PressureRate, dt), p.MinSteamPressure, p.MaxSteamPressure)

	targetFlow := in.Fuel * p.MaxSteamFlow * math.Min(1, newTemp/p.BaselineTemp) * combEff
	targetFlow = clamp(targetFlow, 0, p.MaxSteamFlow)
	newFlow := clamp(Approach(prev.Flow, targetFlow, p.FlowRate, dt), 0, p.MaxSteamFlow)

	return boilerResult{
		Temp:           newTemp,
		Pressure:       newPressure,
		Flow:           newFlow,
		TargetTemp:     targetTemp,
		TargetPressure: targetPressure,
		TargetFlow:     targetFlow,
		CombustionEff:  combEff,
		AirFuelRatio:   ratio,
		HeatInput:      heatInput,
	}
}
