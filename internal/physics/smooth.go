package physics

import "math"

// Approach moves current toward target with first-order exponential
// lag. It is the single inertia primitive in the plant: every primary
// state field and every lever servo goes through it.
//
//	next = current + (target - current) * (1 - e^(-rate*dt))
//
// dt <= 0 or a non-positive rate is a no-op; the result always lies
// between current and target.
func Approach(current, target, rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return current
	}
	return current + (target-current)*(1-math.Exp(-rate*dt))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
