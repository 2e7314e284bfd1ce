package physics

import (
	"math"

	"github.com/powerlab/steamsim/internal/plant"
)

// checkTrips inspects the freshly computed state against the
// protection thresholds. The first violation wins as the recorded
// cause; once set, a trip latches until an explicit reset.
func (e *Engine) checkTrips(s *plant.SystemState) {
	p := e.Params

	cause := plant.TripNone
	switch {
	case s.MainSteamTemp > p.MaxBoilerTemp:
		cause = plant.TripOverTemp
	case s.TurbineSpeed > p.OverspeedTrip:
		cause = plant.TripOverspeed
	case math.Abs(s.DrumLevel) > p.DrumLevelBand && s.MainSteamFlow > p.DrumTripMinFlow:
		// level excursions are masked while the boiler is not steaming
		cause = plant.TripDrumLevel
	}

	if cause != plant.TripNone && !s.Tripped {
		s.Tripped = true
		s.TripCause = cause
	}
}

// applyShutdownDecay runs one slice of the commanded shutdown: a
// plain multiplicative decay of the primaries, deliberately not the
// normal smoothing, so a shutdown reads as uncontrolled rundown. When
// the countdown expires the decay stops and the values hold.
func (e *Engine) applyShutdownDecay(prev plant.SystemState, dt float64) plant.SystemState {
	next := prev

	if next.ShutdownRemaining > 0 {
		factor := math.Pow(e.Params.ShutdownDecay, dt)
		next.MainSteamFlow *= factor
		next.MainSteamPressure = math.Max(next.MainSteamPressure*factor, e.Params.MinSteamPressure)
		next.MainSteamTemp = math.Max(next.MainSteamTemp*factor, e.Params.MinSteamTemp)
		next.TurbineSpeed *= factor
		next.Load *= factor

		next.ShutdownRemaining -= dt
		if next.ShutdownRemaining < 0 {
			next.ShutdownRemaining = 0
		}
	}

	return next
}
