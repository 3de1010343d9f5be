// Package output shapes an aggregate result into the assessment
// contract: eligibility per option, red flags, the recommendation with
// its rationale, evidence items, confidence and chart visuals.
package output

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/calc"
	"github.com/heatpath/survey-engine/internal/domain"
)

// Confidence thresholds on the count of materially missing
// measurements.
const (
	confidenceMediumAt = 1
	confidenceLowAt    = 3
)

// Build derives the assessment output. It never mutates the aggregate.
func Build(agg *domain.AggregateResult, s *domain.Survey) *domain.EngineOutput {
	out := &domain.EngineOutput{
		Eligibility: eligibility(agg),
		RedFlags:    agg.RedFlags,
		Evidence:    evidence(agg, s),
		Explainers:  explainers(agg),
		Visuals:     []domain.Visual{{Type: domain.VisualTimeline24h, Timeline: &agg.Timeline}},
	}

	out.Recommendation = recommend(agg, out.Eligibility)

	version := s.ContractVersion
	if version == 0 {
		version = domain.ContractVersionMin
	}
	out.Meta = domain.Meta{
		ContractVersion: version,
		Confidence:      confidence(s),
		Assumptions:     append(append([]domain.Assumption{}, agg.Facts.Assumptions...), agg.Hydraulics.Assumptions...),
	}

	return out
}

// MissingMeasurements lists the measurements whose absence degrades
// assessment confidence: the boiler's GC registration, its age, its
// nominal output and the measured dynamic flow.
func MissingMeasurements(s *domain.Survey) []string {
	var missing []string

	var b *domain.Boiler
	if s.CurrentSystem != nil {
		b = s.CurrentSystem.Boiler
	}
	if b == nil || b.GcNumber == nil {
		missing = append(missing, "boiler GC number")
	}
	if _, ok := calc.SystemAgeYears(s); !ok {
		missing = append(missing, "boiler age")
	}
	if b == nil || b.NominalKw == nil {
		missing = append(missing, "boiler nominal output")
	}
	if s.Infrastructure == nil || s.Infrastructure.DynamicFlowLpm == nil {
		missing = append(missing, "dynamic flow measurement")
	}

	return missing
}

func confidence(s *domain.Survey) domain.Confidence {
	missing := MissingMeasurements(s)

	level := domain.ConfidenceHigh
	switch {
	case len(missing) >= confidenceLowAt:
		level = domain.ConfidenceLow
	case len(missing) >= confidenceMediumAt:
		level = domain.ConfidenceMedium
	}

	c := domain.Confidence{Level: level}
	for _, m := range missing {
		c.Reasons = append(c.Reasons, m+" not recorded")
	}
	return c
}

func eligibility(agg *domain.AggregateResult) []domain.OptionEligibility {
	noGas := hasFlag(agg.RedFlags, "RF_NO_GAS")

	combi := domain.OptionEligibility{OptionID: domain.SystemCombi, Status: domain.ViabilityViable}
	switch {
	case noGas:
		combi.Status = domain.ViabilityRejected
		combi.Reasons = append(combi.Reasons, "no gas supply")
	case !agg.Hydraulics.CombiOK:
		combi.Status = domain.ViabilityRejected
		combi.Reasons = append(combi.Reasons, "main cannot feed an instantaneous appliance")
	default:
		if agg.CombiStress.SimultaneousLikely {
			combi.Status = domain.ViabilityCaution
			combi.Reasons = append(combi.Reasons, "simultaneous hot water demand likely")
		}
		if agg.Hydraulics.FlowAssumed {
			combi.Status = domain.ViabilityCaution
			combi.Reasons = append(combi.Reasons, "sized against an assumed dynamic flow")
		}
	}

	stored := domain.OptionEligibility{OptionID: domain.SystemStored, Status: domain.ViabilityViable}
	switch {
	case noGas:
		stored.Status = domain.ViabilityRejected
		stored.Reasons = append(stored.Reasons, "no gas supply")
	default:
		if !agg.Hydraulics.UnventedOK && !agg.Facts.VentedFeasible {
			stored.Status = domain.ViabilityCaution
			stored.Reasons = append(stored.Reasons, "neither unvented pressure nor header tank space; needs a thermal store or accumulator")
		}
		if agg.Legacy != nil && agg.Legacy.FlowRestricted {
			stored.Status = domain.ViabilityCaution
			stored.Reasons = append(stored.Reasons, "existing pipework restricts flow")
		}
	}

	ashp := domain.OptionEligibility{OptionID: domain.SystemASHP, Status: domain.ViabilityViable}
	if agg.Optimization.FlowTempC > 55 {
		ashp.Status = domain.ViabilityCaution
		ashp.Reasons = append(ashp.Reasons, "emitters need a design flow above 55°C; upsizing required before a heat pump performs")
	}
	if agg.Legacy != nil && agg.Legacy.Microbore {
		ashp.Status = domain.ViabilityCaution
		ashp.Reasons = append(ashp.Reasons, "microbore distribution must be re-piped for heat pump flow rates")
	}

	return []domain.OptionEligibility{combi, stored, ashp}
}

// recommend prefers what the lifestyle simulation favours, falling back
// through the options in storage-first order when the favourite is
// rejected. The heat pump is never rejected by rule, so the fallback
// always terminates.
func recommend(agg *domain.AggregateResult, elig []domain.OptionEligibility) domain.Recommendation {
	statusOf := make(map[string]domain.Viability, len(elig))
	for _, e := range elig {
		statusOf[e.OptionID] = e.Status
	}

	rec := domain.Recommendation{Primary: agg.Lifestyle.RecommendedSystem}
	if statusOf[rec.Primary] != domain.ViabilityRejected {
		rec.Rationale = append(rec.Rationale,
			fmt.Sprintf("%s occupancy rhythm favours this option", agg.Lifestyle.Signature))
	} else {
		rejected := rec.Primary
		rec.Primary = ""
		for _, id := range []string{domain.SystemStored, domain.SystemCombi, domain.SystemASHP} {
			if statusOf[id] != domain.ViabilityRejected {
				rec.Primary = id
				break
			}
		}
		if rec.Primary == "" {
			rec.Primary = domain.SystemASHP
		}
		rec.Rationale = append(rec.Rationale,
			fmt.Sprintf("lifestyle favourite %s is rejected at this property; next viable option selected", rejected))
	}

	if statusOf[rec.Primary] == domain.ViabilityCaution {
		rec.Rationale = append(rec.Rationale, "recommended with cautions; see eligibility reasons")
	}

	return rec
}

func evidence(agg *domain.AggregateResult, s *domain.Survey) []domain.EvidenceItem {
	var items []domain.EvidenceItem

	flowSource, flowConf := domain.EvidenceManual, domain.ConfidenceHigh
	if agg.Hydraulics.FlowAssumed {
		flowSource, flowConf = domain.EvidenceAssumed, domain.ConfidenceLow
	}
	items = append(items, domain.EvidenceItem{
		ID:               "ev_dynamic_flow",
		FieldPath:        "infrastructure.dynamicFlowLpm",
		Label:            "Dynamic flow",
		Value:            fmt.Sprintf("%.1f L/min", agg.Hydraulics.DynamicFlowLpm),
		Source:           flowSource,
		Confidence:       flowConf,
		AffectsOptionIDs: []string{domain.SystemCombi},
	})

	pressureSource := domain.EvidenceManual
	if s.Infrastructure == nil || s.Infrastructure.MainsDynamicBar == nil {
		pressureSource = domain.EvidenceAssumed
	}
	items = append(items, domain.EvidenceItem{
		ID:               "ev_dynamic_pressure",
		FieldPath:        "infrastructure.mainsDynamicBar",
		Label:            "Dynamic mains pressure",
		Value:            fmt.Sprintf("%.2f bar", agg.Hydraulics.DynamicBar),
		Source:           pressureSource,
		Confidence:       confidenceForSource(pressureSource),
		AffectsOptionIDs: []string{domain.SystemCombi, domain.SystemStored},
	})

	lossSource := domain.EvidenceManual
	if agg.Facts.HeatLossAssumed {
		lossSource = domain.EvidenceAssumed
	}
	items = append(items, domain.EvidenceItem{
		ID:               "ev_peak_heat_loss",
		FieldPath:        "property.peakHeatLossKw",
		Label:            "Peak heat loss",
		Value:            fmt.Sprintf("%.1f kW", agg.Facts.PeakHeatLossKw),
		Source:           lossSource,
		Confidence:       confidenceForSource(lossSource),
		AffectsOptionIDs: []string{domain.SystemCombi, domain.SystemStored, domain.SystemASHP},
	})

	effSource := domain.EvidencePlaceholder
	effConf := domain.ConfidenceLow
	if agg.Sedbuk != nil && agg.Sedbuk.Source != calc.SourcePlaceholder {
		effSource = domain.EvidenceDerived
		effConf = domain.ConfidenceHigh
	}
	items = append(items, domain.EvidenceItem{
		ID:               "ev_nominal_efficiency",
		FieldPath:        "currentSystem.boiler",
		Label:            "Nominal seasonal efficiency",
		Value:            fmt.Sprintf("%.1f%%", agg.Efficiency.NominalPct),
		Source:           effSource,
		Confidence:       effConf,
		AffectsOptionIDs: []string{domain.SystemCombi, domain.SystemStored},
	})

	items = append(items, domain.EvidenceItem{
		ID:               "ev_hardness",
		FieldPath:        "property.postcode",
		Label:            "Water hardness",
		Value:            string(agg.Facts.Hardness),
		Source:           domain.EvidenceDerived,
		Confidence:       domain.ConfidenceMedium,
		AffectsOptionIDs: []string{domain.SystemCombi, domain.SystemStored},
	})

	items = append(items, domain.EvidenceItem{
		ID:               "ev_system_volume",
		FieldPath:        "property.radiatorCount",
		Label:            "System volume",
		Value:            fmt.Sprintf("%.0f L (%s)", agg.Facts.SystemVolumeL, agg.Facts.VolumeBasis),
		Source:           domain.EvidenceDerived,
		Confidence:       domain.ConfidenceMedium,
		AffectsOptionIDs: []string{domain.SystemASHP},
	})

	return items
}

func explainers(agg *domain.AggregateResult) []string {
	var out []string
	out = append(out, agg.Lifestyle.Notes...)
	out = append(out, agg.Hydraulics.Notes...)
	out = append(out, agg.CombiStress.Notes...)
	out = append(out, agg.Cylinder.Notes...)
	out = append(out, agg.SludgeScale.Notes...)
	out = append(out, agg.Optimization.Notes...)
	out = append(out, agg.Efficiency.Notes...)
	if agg.Sedbuk != nil {
		out = append(out, agg.Sedbuk.Notes...)
	}
	if agg.Sizing != nil {
		out = append(out, agg.Sizing.Notes...)
	}
	if agg.Fabric != nil {
		out = append(out, agg.Fabric.Notes...)
	}
	if agg.Legacy != nil {
		out = append(out, agg.Legacy.Notes...)
	}
	if agg.GridFlex != nil {
		out = append(out, agg.GridFlex.Notes...)
	}
	return out
}

func confidenceForSource(s domain.EvidenceSource) domain.ConfidenceLevel {
	if s == domain.EvidenceManual {
		return domain.ConfidenceHigh
	}
	return domain.ConfidenceLow
}

func hasFlag(flags []domain.Flag, id string) bool {
	for _, f := range flags {
		if f.ID == id {
			return true
		}
	}
	return false
}
