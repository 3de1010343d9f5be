package calc

import (
	"fmt"
	"strings"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Nominal efficiency sources.
const (
	SourceGcNumber    = "gc_number"
	SourceErpBand     = "erp_band"
	SourcePlaceholder = "placeholder"

	// PlaceholderNominalPct stands in when neither the GC registration
	// nor the ErP band resolves, and for properties with no boiler on
	// record at all. It matches a mid-1990s non-condensing appliance,
	// the conservative middle of the retrofit fleet.
	PlaceholderNominalPct = 78.0
)

// SedbukLookup resolves the installed boiler's nominal seasonal
// efficiency. Gated on the currentSystem.boiler sub-object; the lookup
// tables are the immutable calibration data injected at startup.
func SedbukLookup(b *domain.Boiler, erpBandPct, gcNumberPct map[string]float64) domain.SedbukResult {
	var r domain.SedbukResult

	if b.GcNumber != nil {
		gc := strings.TrimSpace(*b.GcNumber)
		if pct, ok := gcNumberPct[gc]; ok {
			r.NominalEfficiencyPct = pct
			r.Source = SourceGcNumber
			r.Notes = append(r.Notes, fmt.Sprintf("GC %s resolved to %.1f%% seasonal efficiency", gc, pct))
			return r
		}
		r.Notes = append(r.Notes, fmt.Sprintf("GC %s not in the efficiency dataset", gc))
	}

	if b.ErpBand != nil {
		band := strings.ToUpper(strings.TrimSpace(*b.ErpBand))
		if pct, ok := erpBandPct[band]; ok {
			r.NominalEfficiencyPct = pct
			r.Band = band
			r.Source = SourceErpBand
			return r
		}
		r.Notes = append(r.Notes, fmt.Sprintf("unrecognized ErP band %q", *b.ErpBand))
	}

	r.NominalEfficiencyPct = PlaceholderNominalPct
	r.Source = SourcePlaceholder
	r.Notes = append(r.Notes, fmt.Sprintf("nominal efficiency placeholder %.0f%% pending appliance identification", PlaceholderNominalPct))
	return r
}

// Sizing margins. Required output carries a weather margin over peak
// loss plus a reheat allowance for stored hot water.
const (
	sizingMargin      = 1.1
	dhwAllowanceKw    = 3.0
	cyclingFactor     = 1.6
	sapPurgeLossKwhYr = 600
)

// BoilerSizing compares the installed boiler's output against what the
// property needs. Gated on the currentSystem.boiler sub-object.
func BoilerSizing(b *domain.Boiler, facts domain.NormalizedFacts) domain.SizingResult {
	var r domain.SizingResult

	r.RequiredKw = facts.PeakHeatLossKw*sizingMargin + dhwAllowanceKw

	if b.NominalKw != nil && *b.NominalKw > 0 {
		r.NominalKw = *b.NominalKw
		r.OversizeFactor = r.NominalKw / r.RequiredKw
		r.CyclingRisk = r.OversizeFactor > cyclingFactor
		if r.CyclingRisk {
			r.Notes = append(r.Notes, fmt.Sprintf(
				"%.0f kW installed against %.1f kW required (%.1fx); short cycling adds purge and standby losses around %d kWh/yr",
				r.NominalKw, r.RequiredKw, r.OversizeFactor, sapPurgeLossKwhYr))
		}
	} else {
		r.Notes = append(r.Notes, "nominal output not recorded; oversize check skipped")
	}

	return r
}
