package analysis

import "math"

// IRROutcome is a tagged IRR result. Found distinguishes "no economically
// meaningful rate exists" from a rate that legitimately computes to 0%.
type IRROutcome struct {
	Found bool    `json:"found"`
	Rate  float64 `json:"rate"` // percentage, e.g. 10 means 10%
}

const (
	irrIterations = 60
	irrLowerBound = -0.5
	irrRateFloor  = -1.0 // -100%
	irrRateCap    = 10.0 // +1000%
)

// irrUpperBounds are tried in order when the initial bracket has no sign change.
var irrUpperBounds = []float64{5, 10, 50, 100}

// SolveIRR finds the periodic rate that zeroes the net present value of an
// ordered cash-flow sequence (index 0 = time of investment, normally
// negative). Bisection over a widening bracket is used instead of
// Newton-Raphson: it cannot diverge or oscillate on ill-conditioned
// polynomials, and 60 iterations give far more precision than needed.
func SolveIRR(flows []float64) IRROutcome {
	// Without both an outflow and an inflow, NPV never crosses zero.
	hasNeg, hasPos := false, false
	for _, f := range flows {
		if f < 0 {
			hasNeg = true
		}
		if f > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return IRROutcome{}
	}

	npv := func(rate float64) float64 {
		sum := 0.0
		for t, f := range flows {
			sum += f / math.Pow(1+rate, float64(t))
		}
		return sum
	}

	lo := irrLowerBound
	npvLo := npv(lo)

	hi := 0.0
	bracketed := false
	for _, upper := range irrUpperBounds {
		if npvLo*npv(upper) <= 0 {
			hi = upper
			bracketed = true
			break
		}
	}
	if !bracketed {
		return IRROutcome{}
	}

	for iter := 0; iter < irrIterations; iter++ {
		mid := (lo + hi) / 2
		npvMid := npv(mid)
		if npvLo*npvMid <= 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	rate := (lo + hi) / 2
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < irrRateFloor || rate > irrRateCap {
		return IRROutcome{}
	}

	return IRROutcome{Found: true, Rate: rate * 100}
}
