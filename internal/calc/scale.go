package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Circuit degradation weighting. The sludge penalty is a fixed figure
// for an aged, unfiltered circuit; the scale penalty accumulates with
// water hardness over the system's life.
const (
	SludgePenaltyPct = 7.0

	sludgeFilteredPct = 2.0
	sludgeYoungPct    = 1.0
	sludgeAgeYears    = 8
	scalePenaltyCap   = 12.0
)

// SludgeVsScale weighs circuit sludge against limescale as the dominant
// degradation mechanism for the surveyed system.
func SludgeVsScale(s *domain.Survey, facts domain.NormalizedFacts) domain.SludgeScaleResult {
	var r domain.SludgeScaleResult

	age, ageKnown := SystemAgeYears(s)

	if ageKnown {
		r.ScalePenaltyPct = facts.TenYearDecayPct * float64(age) / 10.0
		if r.ScalePenaltyPct > scalePenaltyCap {
			r.ScalePenaltyPct = scalePenaltyCap
		}

		filtered := s.CurrentSystem != nil && s.CurrentSystem.MagneticFilter != nil && *s.CurrentSystem.MagneticFilter
		switch {
		case age >= sludgeAgeYears && !filtered:
			r.SludgePenaltyPct = SludgePenaltyPct
			r.Flags = append(r.Flags, domain.Flag{
				ID:       "RF_SLUDGED_CIRCUIT",
				Severity: domain.SeverityWarn,
				Title:    "Unfiltered aged circuit",
				Detail:   fmt.Sprintf("%d years without a magnetic filter; flush the circuit before fitting a new appliance", age),
			})
		case age >= sludgeAgeYears:
			r.SludgePenaltyPct = sludgeFilteredPct
		default:
			r.SludgePenaltyPct = sludgeYoungPct
		}
	} else {
		r.Notes = append(r.Notes, "system age unknown; degradation penalties not applied")
	}

	switch {
	case r.SludgePenaltyPct > r.ScalePenaltyPct:
		r.DominantRisk = "sludge"
	case r.ScalePenaltyPct > r.SludgePenaltyPct:
		r.DominantRisk = "scale"
	default:
		r.DominantRisk = "balanced"
	}

	if facts.Hardness == domain.HardnessVeryHard || facts.Hardness == domain.HardnessHard {
		r.Notes = append(r.Notes, fmt.Sprintf("%s water area; scale protection required on any stored or instantaneous hot water", facts.Hardness))
	}

	return r
}

// SystemAgeYears prefers the boiler's recorded age over the wider
// system's.
func SystemAgeYears(s *domain.Survey) (int, bool) {
	if s.CurrentSystem == nil {
		return 0, false
	}
	if s.CurrentSystem.Boiler != nil && s.CurrentSystem.Boiler.AgeYears != nil {
		return *s.CurrentSystem.Boiler.AgeYears, true
	}
	if s.CurrentSystem.AgeYears != nil {
		return *s.CurrentSystem.AgeYears, true
	}
	return 0, false
}
