package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Simultaneous-demand weighting. An instantaneous appliance serves one
// full-rate outlet; the score estimates how often the household will ask
// for more than that.
const (
	stressPerOccupant = 0.3
	stressPerBathroom = 0.5
	stressPerOutlet   = 0.4
	stressThreshold   = 1.5
)

// CombiStress scores the pressure a household places on an
// instantaneous-only hot water system.
func CombiStress(s *domain.Survey, facts domain.NormalizedFacts) domain.CombiStressResult {
	var r domain.CombiStressResult

	outlets := 1
	if s.DHW != nil && s.DHW.SimultaneousOutlets != nil && *s.DHW.SimultaneousOutlets > 0 {
		outlets = *s.DHW.SimultaneousOutlets
	}

	r.StressScore = float64(facts.Occupants)*stressPerOccupant +
		float64(facts.Bathrooms)*stressPerBathroom +
		float64(outlets)*stressPerOutlet
	r.SimultaneousLikely = r.StressScore > stressThreshold

	if r.SimultaneousLikely {
		r.Notes = append(r.Notes, fmt.Sprintf(
			"stress score %.1f: %d occupants across %d bathrooms will overlap hot water draws; an instantaneous appliance serves one outlet at full rate",
			r.StressScore, facts.Occupants, facts.Bathrooms))
	}

	return r
}
