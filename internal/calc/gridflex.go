package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Load-shifting defaults. The baseline covers wet appliances and small
// storage when no cylinder reheat figure is available.
const (
	defaultFlexWindowHours = 7.0
	baselineShiftableKwh   = 1.5
)

// GridFlex estimates load-shifting headroom under a smart tariff. Gated
// on the services sub-object; reheatKwh comes from the cylinder module
// so the two stay independently testable.
func GridFlex(s *domain.Survey, facts domain.NormalizedFacts, reheatKwh float64) domain.GridFlexResult {
	var r domain.GridFlexResult

	svc := s.Services

	r.Flexible = svc.SmartTariff != nil && *svc.SmartTariff

	r.FlexWindowHours = defaultFlexWindowHours
	if svc.OffPeakHours != nil && *svc.OffPeakHours > 0 {
		r.FlexWindowHours = *svc.OffPeakHours
	}

	r.ShiftableKwhDay = baselineShiftableKwh
	if reheatKwh > 0 {
		r.ShiftableKwhDay = reheatKwh
	}

	if r.Flexible {
		r.Notes = append(r.Notes, fmt.Sprintf(
			"%.1f kWh/day of hot water reheat can move into the %.0f-hour off-peak window", r.ShiftableKwhDay, r.FlexWindowHours))
	} else {
		r.Notes = append(r.Notes, "no smart tariff; shifting the reheat window yields no bill benefit today")
	}

	if svc.Phases != nil && *svc.Phases >= 3 {
		r.Notes = append(r.Notes, "three-phase supply; no single-phase output limit on a heat pump")
	}

	return r
}
