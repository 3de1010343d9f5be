package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Flow temperature selection by emitter headroom, in litres of system
// volume per kW of peak loss. Oversized emitters run cooler for the same
// room temperatures, which keeps a condensing appliance in its
// condensing range.
const (
	headroomFlow45 = 12.0
	headroomFlow55 = 9.0

	savingFlow45Pct  = 6.0
	savingFlow55Pct  = 4.0
	savingFlow65Pct  = 1.0
	weatherCompBonus = 2.0
)

// SystemOptimization recommends a design flow temperature and controls
// change for the surveyed emitters.
func SystemOptimization(s *domain.Survey, facts domain.NormalizedFacts) domain.OptimizationResult {
	var r domain.OptimizationResult

	headroom := 0.0
	if facts.PeakHeatLossKw > 0 {
		headroom = facts.SystemVolumeL / facts.PeakHeatLossKw
	}

	switch {
	case headroom >= headroomFlow45:
		r.FlowTempC = 45
		r.EstSavingPct = savingFlow45Pct
	case headroom >= headroomFlow55:
		r.FlowTempC = 55
		r.EstSavingPct = savingFlow55Pct
	default:
		r.FlowTempC = 65
		r.EstSavingPct = savingFlow65Pct
		r.Notes = append(r.Notes, fmt.Sprintf(
			"emitter headroom %.1f L/kW is tight; upsizing radiators would allow a lower design flow temperature", headroom))
	}

	r.WeatherCompensation = true
	r.EstSavingPct += weatherCompBonus

	r.Notes = append(r.Notes, fmt.Sprintf("design flow %d°C with weather compensation, estimated %.0f%% saving over a fixed 75°C flow",
		r.FlowTempC, r.EstSavingPct))

	return r
}
