// Package revenue converts generated load into money. The total is
// recomputed from run time and instantaneous load rather than summed
// per tick, so variable tick rates cannot drift the figure.
package revenue

type Meter struct {
	Rate float64 // currency per MWh
}

func NewMeter(rate float64) Meter {
	return Meter{Rate: rate}
}

// Earnings is pure and idempotent: the same load and elapsed time
// always give the same total.
func (m Meter) Earnings(loadMW, elapsedSeconds float64) float64 {
	if loadMW < 0 || elapsedSeconds < 0 {
		return 0
	}
	return loadMW * m.Rate * elapsedSeconds / 3600
}
