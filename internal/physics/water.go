package physics

import "math"

type waterResult struct {
	CondensateFlow       float64
	CirculatingWaterFlow float64
	CondenserVacuum      float64
	CondenserOutletTemp  float64
	CoolingWaterInTemp   float64
	CoolingWaterOutTemp  float64
	FeedwaterFlow        float64
	FeedwaterTemp        float64
	FeedwaterPressure    float64
	HPHeaterTemp         float64
	LPHeaterTemp         float64
	DrumLevel            float64
}

// waterStage closes the condensate and feedwater loop. It carries no
// inertia of its own; every output is a direct function of the
// turbine load and the cooling-side levers, clamped to its range.
func (e *Engine) waterStage(in stageInputs, boiler boilerResult, turbine turbineResult) waterResult {
	p := e.Params

	loadFrac := turbine.Load / p.RatedCapacity

	condensate := turbine.Load * p.CondensatePerMW * (0.5 + 0.5*in.Condenser)
	circulating := in.Cooling * p.MaxCircWaterFlow * (0.3 + 0.7*loadFrac)

	vacuum := p.MaxVacuum * (0.6 + 0.4*in.Condenser)
	vacuum -= loadFrac * 8 * (1 - in.Cooling)
	vacuum = clamp(vacuum, 0, p.MaxVacuum)

	rise := p.CondenserRiseMax * loadFrac * (1.2 - in.Cooling)
	rise = math.Max(rise, 0)
	coolingIn := p.AmbientWaterTemp
	coolingOut := coolingIn + rise
	condenserOut := coolingIn + 3 + rise*0.8

	feedFlow := in.Feedwater * p.MaxFeedwaterFlow
	feedTemp := clamp(150+loadFrac*130, 20, 300)
	feedPressure := clamp(boiler.Pressure*1.15+2, 0.1, p.MaxSteamPressure*1.2)

	hpHeater := clamp(feedTemp+20+loadFrac*15, 20, 330)
	lpHeater := clamp(60+loadFrac*60, 20, 160)

	// drum level: lever setpoint offset plus feed/steam mismatch
	level := (in.WaterLevel-0.5)*2*p.DrumLevelSpan +
		(in.Feedwater-boiler.Flow/p.MaxSteamFlow)*p.DrumImbalanceGain

	return waterResult{
		CondensateFlow:       condensate,
		CirculatingWaterFlow: circulating,
		CondenserVacuum:      vacuum,
		CondenserOutletTemp:  condenserOut,
		CoolingWaterInTemp:   coolingIn,
		CoolingWaterOutTemp:  coolingOut,
		FeedwaterFlow:        feedFlow,
		FeedwaterTemp:        feedTemp,
		FeedwaterPressure:    feedPressure,
		HPHeaterTemp:         hpHeater,
		LPHeaterTemp:         lpHeater,
		DrumLevel:            level,
	}
}
