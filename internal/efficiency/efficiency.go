// Package efficiency models seasonal combustion efficiency and heat
// pump COP. Percentages live in [FloorPct, CeilPct]; every consumer
// clamps through the one primitive so no path can emit an out-of-range
// or NaN figure.
package efficiency

import "math"

// Efficiency bounds. The floor represents a badly degraded
// non-condensing appliance, the ceiling the physical limit of flue gas
// condensation.
const (
	FloorPct = 50.0
	CeilPct  = 99.0
)

// ClampPct bounds an efficiency percentage. NaN collapses to the floor
// so arithmetic mistakes upstream surface as a visible worst case, not
// as a hole in the chart.
func ClampPct(v float64) float64 {
	if math.IsNaN(v) {
		return FloorPct
	}
	if v < FloorPct {
		return FloorPct
	}
	if v > CeilPct {
		return CeilPct
	}
	return v
}

// Part-load penalty bands, percent. Below a fifth of capacity a boiler
// cycles; between a fifth and a half it condenses poorly.
func loadPenaltyPct(loadFraction float64) float64 {
	switch {
	case loadFraction < 0.2:
		return 8
	case loadFraction < 0.5:
		return 4
	default:
		return 1
	}
}

// AgeDecayPct converts the hardness-derived ten-year decay figure to
// the installed appliance's age.
func AgeDecayPct(tenYearDecayPct float64, ageYears int) float64 {
	if ageYears < 0 {
		ageYears = 0
	}
	return tenYearDecayPct * float64(ageYears) / 10.0
}

// CurrentEfficiencyPct is the operating efficiency of a combustion
// appliance at one moment: nominal minus age decay minus the part-load
// penalty, clamped.
func CurrentEfficiencyPct(nominalPct, ageDecayPct, loadFraction float64) float64 {
	return ClampPct(nominalPct - ageDecayPct - loadPenaltyPct(loadFraction))
}

// Curve evaluates CurrentEfficiencyPct across a day of load fractions.
func Curve(nominalPct, ageDecayPct float64, loadFractions []float64) []float64 {
	out := make([]float64, len(loadFractions))
	for i, f := range loadFractions {
		out[i] = CurrentEfficiencyPct(nominalPct, ageDecayPct, f)
	}
	return out
}

// Heat pump COP falls as the emitters ask for more temperature lift.
// The clamp floor keeps COP strictly above 1 so the two performance
// kinds can never be confused on an axis.
const (
	copBase      = 3.4
	copLoadSlope = 1.2
	copMin       = 1.8
	copMax       = 4.5
)

// CopAt is the heat pump COP at one load fraction.
func CopAt(loadFraction float64) float64 {
	cop := copBase - copLoadSlope*loadFraction
	if math.IsNaN(cop) || cop < copMin {
		return copMin
	}
	if cop > copMax {
		return copMax
	}
	return cop
}
