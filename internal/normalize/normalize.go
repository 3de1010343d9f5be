// Package normalize converts a raw survey into the canonical facts that
// every calculation module reads. Missing optional inputs become
// assumption entries here, never errors; downstream modules see a fully
// populated fact set and stay total.
package normalize

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/config"
	"github.com/heatpath/survey-engine/internal/domain"
)

// Volume and default calibration. Volume falls back from radiator count
// to a heat-loss proxy when no radiators were counted.
const (
	LitresPerRadiator   = 10.0
	LitresPerHeatLossKw = 6.0

	DefaultBedrooms  = 3
	DefaultOccupants = 2
	DefaultBathrooms = 1

	// Default peak heat loss when the surveyor measured none:
	// base dwelling load plus a per-bedroom increment, in kW.
	HeatLossBaseKw       = 3.0
	HeatLossPerBedroomKw = 1.25
)

// TenYearDecayPct returns the efficiency decay accumulated over ten
// years of scaling for a hardness category.
func TenYearDecayPct(h domain.Hardness) float64 {
	switch h {
	case domain.HardnessSoft:
		return 2.0
	case domain.HardnessHard:
		return 7.0
	case domain.HardnessVeryHard:
		return 10.0
	default:
		return 4.0
	}
}

// CanonicalSignature folds legacy occupancy aliases into their canonical
// values. Anything unrecognized becomes the explicit unknown variant.
func CanonicalSignature(raw string) domain.OccupancySignature {
	switch raw {
	case "professional":
		return domain.OccupancyProfessional
	case "steady", "steady_home":
		return domain.OccupancySteady
	case "shift", "shift_worker":
		return domain.OccupancyShift
	default:
		return domain.OccupancyUnknown
	}
}

// Normalize derives the canonical fact set for one survey. It is total:
// any survey, however sparse, normalizes to usable facts plus the
// assumptions that filled the gaps.
func Normalize(s *domain.Survey, t *config.Tables) domain.NormalizedFacts {
	var facts domain.NormalizedFacts
	assume := func(fieldPath, value string, sev domain.Severity, note string) {
		facts.Assumptions = append(facts.Assumptions, domain.Assumption{
			FieldPath: fieldPath,
			Value:     value,
			Severity:  sev,
			Note:      note,
		})
	}

	// Occupancy signature, alias-folded exactly once at this boundary.
	raw := ""
	if s.Occupancy != nil {
		raw = s.Occupancy.Signature
	}
	facts.Signature = CanonicalSignature(raw)
	if facts.Signature == domain.OccupancyUnknown {
		switch raw {
		case "", "unknown":
			assume("occupancy.signature", "unknown", domain.SeverityInfo, "no occupancy rhythm reported")
		default:
			assume("occupancy.signature", "unknown", domain.SeverityInfo,
				fmt.Sprintf("unrecognized occupancy signature %q", raw))
		}
	}

	// Water hardness from the postcode prefix; unknown areas and
	// missing postcodes both read as moderate.
	postcode := ""
	if s.Property != nil {
		postcode = s.Property.Postcode
	}
	if h, ok := t.HardnessFor(postcode); ok {
		facts.Hardness = h
	} else {
		facts.Hardness = domain.HardnessModerate
		assume("property.postcode", string(domain.HardnessModerate), domain.SeverityInfo,
			"water hardness defaulted: postcode missing or outside the calibration table")
	}
	facts.TenYearDecayPct = TenYearDecayPct(facts.Hardness)

	// Household shape defaults.
	facts.Bedrooms = DefaultBedrooms
	facts.Occupants = DefaultOccupants
	facts.Bathrooms = DefaultBathrooms
	if s.Property != nil && s.Property.Bedrooms > 0 {
		facts.Bedrooms = s.Property.Bedrooms
	} else {
		assume("property.bedrooms", fmt.Sprintf("%d", DefaultBedrooms), domain.SeverityInfo, "bedroom count not reported")
	}
	if s.Property != nil && s.Property.Occupants > 0 {
		facts.Occupants = s.Property.Occupants
	} else {
		assume("property.occupants", fmt.Sprintf("%d", DefaultOccupants), domain.SeverityInfo, "occupant count not reported")
	}
	if s.Property != nil && s.Property.Bathrooms > 0 {
		facts.Bathrooms = s.Property.Bathrooms
	} else {
		assume("property.bathrooms", fmt.Sprintf("%d", DefaultBathrooms), domain.SeverityInfo, "bathroom count not reported")
	}

	// Peak heat loss. The default is flagged warn because sizing and
	// volume both lean on it.
	if s.Property != nil && s.Property.PeakHeatLossKw != nil && *s.Property.PeakHeatLossKw > 0 {
		facts.PeakHeatLossKw = *s.Property.PeakHeatLossKw
	} else {
		facts.PeakHeatLossKw = HeatLossBaseKw + HeatLossPerBedroomKw*float64(facts.Bedrooms)
		facts.HeatLossAssumed = true
		assume("property.peakHeatLossKw", fmt.Sprintf("%.2f", facts.PeakHeatLossKw), domain.SeverityWarn,
			"peak heat loss estimated from bedroom count")
	}

	// System volume: radiator count when available, heat-loss proxy
	// otherwise.
	if s.Property != nil && s.Property.RadiatorCount > 0 {
		facts.SystemVolumeL = float64(s.Property.RadiatorCount) * LitresPerRadiator
		facts.VolumeBasis = domain.VolumeFromRadiators
	} else {
		facts.SystemVolumeL = facts.PeakHeatLossKw * LitresPerHeatLossKw
		facts.VolumeBasis = domain.VolumeFromHeatLoss
		assume("property.radiatorCount", fmt.Sprintf("%.0fL", facts.SystemVolumeL), domain.SeverityInfo,
			"system volume estimated from peak heat loss")
	}

	// A loft conversion removes the header-tank space a vented system
	// needs.
	facts.VentedFeasible = s.Property == nil || !s.Property.HasLoftConversion

	return facts
}
