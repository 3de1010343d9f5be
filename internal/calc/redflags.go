package calc

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Rejection and caution thresholds.
const (
	lowDynamicBarFail = 0.8
	oldBoilerYears    = 15
)

// RedFlags evaluates the survey-level rules that reject or caution
// options outright. Each rule reads the survey and facts directly so the
// list stays independent of the other modules.
func RedFlags(s *domain.Survey, facts domain.NormalizedFacts) []domain.Flag {
	var flags []domain.Flag

	if s.Services != nil && s.Services.GasAvailable != nil && !*s.Services.GasAvailable {
		flags = append(flags, domain.Flag{
			ID:       "RF_NO_GAS",
			Severity: domain.SeverityFail,
			Title:    "No gas supply",
			Detail:   "gas-fired options are unavailable at this property",
		})
	}

	if s.Infrastructure != nil && s.Infrastructure.MainsDynamicBar != nil {
		if d := *s.Infrastructure.MainsDynamicBar; d > 0 && d < lowDynamicBarFail {
			flags = append(flags, domain.Flag{
				ID:       "RF_LOW_DYNAMIC_PRESSURE",
				Severity: domain.SeverityFail,
				Title:    "Dynamic mains pressure too low",
				Detail:   fmt.Sprintf("%.2f bar under flow cannot support instantaneous hot water", d),
			})
		}
	}

	if !facts.VentedFeasible {
		flags = append(flags, domain.Flag{
			ID:       "RF_VENTED_BLOCKED",
			Severity: domain.SeverityWarn,
			Title:    "No space for a vented arrangement",
			Detail:   "the loft conversion removed the header tank space a vented system needs",
		})
	}

	if age, ok := SystemAgeYears(s); ok && age >= oldBoilerYears {
		flags = append(flags, domain.Flag{
			ID:       "RF_OLD_BOILER",
			Severity: domain.SeverityInfo,
			Title:    "Appliance beyond design life",
			Detail:   fmt.Sprintf("%d years old; spares availability and efficiency both degrade from here", age),
		})
	}

	return flags
}
