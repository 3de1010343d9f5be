package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Store sizing. A stratified smart store draws usable hot water from a
// larger fraction of its volume than a conventional coil cylinder, so it
// can be specified smaller for the same service.
const (
	litresPerOccupant   = 45.0
	bathExtraLitres     = 30.0
	minStoreLitres      = 120.0
	conventionalUsable  = 0.75
	stratifiedUsable    = 0.90
	reheatDeltaT        = 50.0
	specificHeatKjPerLK = 4.186
)

// CylinderVolumetrics sizes a conventional cylinder and its stratified
// smart-store equivalent for the household.
func CylinderVolumetrics(s *domain.Survey, facts domain.NormalizedFacts) domain.CylinderResult {
	var r domain.CylinderResult

	hasBath := false
	if s.DHW != nil && s.DHW.BathsPerDay != nil && *s.DHW.BathsPerDay > 0 {
		hasBath = true
	}
	if s.Lifestyle != nil && s.Lifestyle.HasBath {
		hasBath = true
	}

	r.RecommendedStoreL = float64(facts.Occupants) * litresPerOccupant
	if hasBath {
		r.RecommendedStoreL += bathExtraLitres
	}
	if r.RecommendedStoreL < minStoreLitres {
		r.RecommendedStoreL = minStoreLitres
	}

	r.SmartStoreL = r.RecommendedStoreL * conventionalUsable / stratifiedUsable
	r.ReheatKwh = r.RecommendedStoreL * specificHeatKjPerLK * reheatDeltaT / 3600.0

	r.Notes = append(r.Notes, fmt.Sprintf(
		"%.0fL conventional store (%.0fL stratified equivalent) for %d occupants; full reheat %.1f kWh",
		r.RecommendedStoreL, r.SmartStoreL, facts.Occupants, r.ReheatKwh))

	return r
}
