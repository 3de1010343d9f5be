// Package calc holds the independent calculation modules of the
// assessment pipeline. Every module is a pure function of the survey and
// the normalized facts: no I/O, no clock, no randomness and no errors.
// Modules gated on an optional sub-object run only when that sub-object
// is present; the engine owns the gating.
package calc

import (
	"fmt"
	"math"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Mains requirements and substitution defaults.
const (
	combiMinDynamicBar    = 1.0
	combiMinFlowLpm       = 10.0
	unventedMinDynamicBar = 1.5
	unventedMinFlowLpm    = 12.0

	defaultStaticBar     = 2.0
	defaultFlowLpm       = 10.0
	dynamicOfStatic      = 0.7
	pressureToleranceBar = 0.3
)

// HydraulicSafety checks whether the incoming main supports
// instantaneous (combi) and unvented-cylinder options. A dynamic reading
// above the static reading is physically impossible and is reported as a
// diagnostic flag, never as an error.
func HydraulicSafety(s *domain.Survey, facts domain.NormalizedFacts) domain.HydraulicSafetyResult {
	var r domain.HydraulicSafetyResult
	assume := func(fieldPath, value string, sev domain.Severity, note string) {
		r.Assumptions = append(r.Assumptions, domain.Assumption{FieldPath: fieldPath, Value: value, Severity: sev, Note: note})
	}

	infra := s.Infrastructure

	if infra != nil && infra.MainsStaticBar != nil && *infra.MainsStaticBar > 0 {
		r.StaticBar = *infra.MainsStaticBar
	} else {
		r.StaticBar = defaultStaticBar
		assume("infrastructure.mainsStaticBar", fmt.Sprintf("%.1f", defaultStaticBar), domain.SeverityInfo,
			"static mains pressure not measured")
	}

	if infra != nil && infra.MainsDynamicBar != nil && *infra.MainsDynamicBar > 0 {
		r.DynamicBar = *infra.MainsDynamicBar
	} else {
		r.DynamicBar = r.StaticBar * dynamicOfStatic
		assume("infrastructure.mainsDynamicBar", fmt.Sprintf("%.2f", r.DynamicBar), domain.SeverityInfo,
			"dynamic mains pressure estimated from static reading")
	}

	if infra != nil && infra.DynamicFlowLpm != nil && *infra.DynamicFlowLpm > 0 {
		r.DynamicFlowLpm = *infra.DynamicFlowLpm
	} else {
		r.DynamicFlowLpm = defaultFlowLpm
		r.FlowAssumed = true
		assume("infrastructure.dynamicFlowLpm", fmt.Sprintf("%.0f", defaultFlowLpm), domain.SeverityWarn,
			"dynamic flow not measured; instantaneous options sized against an assumed flow")
	}

	if r.DynamicBar > r.StaticBar+pressureToleranceBar {
		r.Inconsistent = true
		r.Flags = append(r.Flags, domain.Flag{
			ID:       "RF_PRESSURE_INCONSISTENT",
			Severity: domain.SeverityWarn,
			Title:    "Dynamic pressure exceeds static pressure",
			Detail: fmt.Sprintf("dynamic %.2f bar against static %.2f bar suggests a misread gauge",
				r.DynamicBar, r.StaticBar),
		})
	}

	r.CombiOK = r.DynamicBar >= combiMinDynamicBar && r.DynamicFlowLpm >= combiMinFlowLpm
	r.UnventedOK = r.DynamicBar >= unventedMinDynamicBar && r.DynamicFlowLpm >= unventedMinFlowLpm

	if !r.CombiOK {
		r.Notes = append(r.Notes, fmt.Sprintf("main delivers %.2f bar / %.0f L/min; instantaneous hot water needs %.1f bar / %.0f L/min",
			r.DynamicBar, r.DynamicFlowLpm, combiMinDynamicBar, combiMinFlowLpm))
	}
	if !r.UnventedOK {
		r.Notes = append(r.Notes, "main below unvented cylinder requirements; vented or open-vented storage only")
	}

	return r
}

// Legacy pipework assessment. The index-circuit drop grows with the
// square of the load and the fifth power of the bore reduction, so
// microbore runs dominate everything else.
const (
	microboreMaxMm    = 10
	defaultPipeworkMm = 22
	indexDropLimitBar = 0.35
)

// LegacyHydraulics assesses the existing distribution pipework. Gated on
// the currentSystem sub-object.
func LegacyHydraulics(s *domain.Survey, facts domain.NormalizedFacts) domain.LegacyHydraulicsResult {
	var r domain.LegacyHydraulicsResult

	cs := s.CurrentSystem
	r.PipeworkMm = defaultPipeworkMm
	if cs.PipeworkMm != nil && *cs.PipeworkMm > 0 {
		r.PipeworkMm = *cs.PipeworkMm
	} else {
		r.Notes = append(r.Notes, "pipework bore not recorded; assuming 22mm primaries")
	}

	r.Microbore = r.PipeworkMm <= microboreMaxMm

	drop := indexCircuitDropBar(facts.PeakHeatLossKw, r.PipeworkMm)
	r.FlowRestricted = r.Microbore || drop > indexDropLimitBar

	if r.Microbore {
		r.Flags = append(r.Flags, domain.Flag{
			ID:       "RF_MICROBORE",
			Severity: domain.SeverityWarn,
			Title:    "Microbore distribution",
			Detail:   fmt.Sprintf("%dmm pipework restricts flow at modern outputs; re-piping likely before a high-output appliance", r.PipeworkMm),
		})
	} else if r.FlowRestricted {
		r.Notes = append(r.Notes, fmt.Sprintf("estimated index circuit drop %.2f bar at %.1f kW exceeds %.2f bar", drop, facts.PeakHeatLossKw, indexDropLimitBar))
	}

	return r
}

// indexCircuitDropBar is a proxy for the worst-run pressure drop,
// normalized to 0.12 bar for a 12 kW load on 22mm pipe.
func indexCircuitDropBar(loadKw float64, boreMm int) float64 {
	if boreMm <= 0 {
		boreMm = defaultPipeworkMm
	}
	loadRatio := loadKw / 12.0
	boreRatio := 22.0 / float64(boreMm)
	return 0.12 * loadRatio * loadRatio * math.Pow(boreRatio, 5)
}
