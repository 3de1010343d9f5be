package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Specific heat loss by construction age band, W/m². Insulation and
// glazing scale the band figure down.
var fabricWPerM2 = map[string]float64{
	"pre1930":   85,
	"1930_1982": 65,
	"1983_2002": 50,
	"post2002":  38,
}

const (
	fabricDefaultWPerM2   = 60.0
	wallInsulationFactor  = 0.85
	doubleGlazingFactor   = 0.92
	fabricMismatchNotePct = 25.0

	// Floor area fallback when the building survey lacks one, m².
	floorAreaBaseM2       = 40.0
	floorAreaPerBedroomM2 = 28.0
)

// FabricModel estimates envelope heat loss from the building survey and
// compares it with the declared peak loss. Gated on the building
// sub-object.
func FabricModel(s *domain.Survey, facts domain.NormalizedFacts) domain.FabricResult {
	var r domain.FabricResult

	b := s.Building

	area := 0.0
	if b.FloorAreaM2 != nil && *b.FloorAreaM2 > 0 {
		area = *b.FloorAreaM2
	} else {
		area = floorAreaBaseM2 + floorAreaPerBedroomM2*float64(facts.Bedrooms)
		r.Notes = append(r.Notes, fmt.Sprintf("floor area estimated at %.0f m² from bedroom count", area))
	}

	wPerM2, ok := fabricWPerM2[b.AgeBand]
	if !ok {
		wPerM2 = fabricDefaultWPerM2
		if b.AgeBand != "" {
			r.Notes = append(r.Notes, fmt.Sprintf("unrecognized age band %q; using the mixed-stock figure", b.AgeBand))
		}
	}
	if b.WallInsulation != nil && *b.WallInsulation {
		wPerM2 *= wallInsulationFactor
	}
	if b.DoubleGlazing != nil && *b.DoubleGlazing {
		wPerM2 *= doubleGlazingFactor
	}

	r.EstimatedHeatLossKw = area * wPerM2 / 1000.0
	r.DeclaredHeatLossKw = facts.PeakHeatLossKw

	if r.DeclaredHeatLossKw > 0 {
		diff := r.EstimatedHeatLossKw - r.DeclaredHeatLossKw
		if diff < 0 {
			diff = -diff
		}
		r.MismatchPct = diff / r.DeclaredHeatLossKw * 100.0
		if r.MismatchPct > fabricMismatchNotePct && !facts.HeatLossAssumed {
			r.Notes = append(r.Notes, fmt.Sprintf(
				"fabric estimate %.1f kW disagrees with the measured %.1f kW by %.0f%%; re-check the heat loss survey",
				r.EstimatedHeatLossKw, r.DeclaredHeatLossKw, r.MismatchPct))
		}
	}

	return r
}
