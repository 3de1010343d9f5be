// Package engine orchestrates the assessment pipeline: normalize once,
// run every calculation module, then build the timeline comparison. The
// pipeline is stateless and deterministic; persistence and transport
// live outside it.
package engine

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/calc"
	"github.com/heatpath/survey-engine/internal/config"
	"github.com/heatpath/survey-engine/internal/domain"
	"github.com/heatpath/survey-engine/internal/efficiency"
	"github.com/heatpath/survey-engine/internal/lifestyle"
	"github.com/heatpath/survey-engine/internal/normalize"
	"github.com/heatpath/survey-engine/internal/timeline"
)

// Engine runs assessments against one immutable set of calibration
// tables.
type Engine struct {
	Tables *config.Tables
}

// NewEngine creates an engine over the given calibration tables.
func NewEngine(tables *config.Tables) *Engine {
	return &Engine{Tables: tables}
}

// Run executes the full pipeline for one survey. The only errors are
// contract violations; an incomplete or implausible survey still
// assesses, carrying its gaps as assumptions and flags.
func (e *Engine) Run(s *domain.Survey) (*domain.AggregateResult, error) {
	if s == nil {
		return nil, domain.ErrSurveyNil
	}
	version := s.ContractVersion
	if version == 0 {
		version = domain.ContractVersionMin
	}
	if version < domain.ContractVersionMin || version > domain.ContractVersionMax {
		return nil, domain.NewEngineError(domain.ErrContractVersion.Code,
			fmt.Sprintf("contract version %d outside supported range %d to %d",
				s.ContractVersion, domain.ContractVersionMin, domain.ContractVersionMax))
	}

	agg := &domain.AggregateResult{}
	agg.Facts = normalize.Normalize(s, e.Tables)

	// Unconditional modules. Each reads the survey and facts alone, so
	// their order is free; this one groups water, store and circuit
	// concerns before the behavioral simulation.
	agg.Hydraulics = calc.HydraulicSafety(s, agg.Facts)
	agg.CombiStress = calc.CombiStress(s, agg.Facts)
	agg.Cylinder = calc.CylinderVolumetrics(s, agg.Facts)
	agg.SludgeScale = calc.SludgeVsScale(s, agg.Facts)
	agg.Optimization = calc.SystemOptimization(s, agg.Facts)
	agg.Lifestyle = lifestyle.Simulate(agg.Facts)

	// Conditional modules run only when their optional sub-object was
	// submitted. A nil result downstream means skipped, never zero.
	if s.CurrentSystem != nil {
		legacy := calc.LegacyHydraulics(s, agg.Facts)
		agg.Legacy = &legacy
		if s.CurrentSystem.Boiler != nil {
			sed := calc.SedbukLookup(s.CurrentSystem.Boiler, e.Tables.ErpBandPct, e.Tables.GcNumberPct)
			agg.Sedbuk = &sed
			sizing := calc.BoilerSizing(s.CurrentSystem.Boiler, agg.Facts)
			agg.Sizing = &sizing
		}
	}
	if s.Building != nil {
		fabric := calc.FabricModel(s, agg.Facts)
		agg.Fabric = &fabric
	}
	if s.Services != nil {
		flex := calc.GridFlex(s, agg.Facts, agg.Cylinder.ReheatKwh)
		agg.GridFlex = &flex
	}

	agg.RedFlags = collectFlags(s, agg)
	agg.Efficiency = efficiencySummary(s, agg)

	// The timeline contract takes the quarter-hour grid, so the hourly
	// simulation is resampled here before handover.
	var hourly [24]float64
	for _, p := range agg.Lifestyle.Hourly {
		if p.Hour >= 0 && p.Hour < 24 {
			hourly[p.Hour] = p.DemandKw
		}
	}
	demand96 := timeline.Resample96(hourly)

	agg.Timeline = timeline.Build(timeline.BuildInput{
		SystemIDs:      compareSystems(agg),
		Demand96:       demand96,
		PeakHeatLossKw: agg.Facts.PeakHeatLossKw,
		NominalPct:     agg.Efficiency.NominalPct,
		AgeDecayPct:    agg.Efficiency.AgeDecayPct,
		Profile:        s.Lifestyle,
	})

	return agg, nil
}

// collectFlags merges the rule-level red flags with those raised inside
// modules. First occurrence of an ID wins; order is fixed so identical
// surveys flag identically.
func collectFlags(s *domain.Survey, agg *domain.AggregateResult) []domain.Flag {
	merged := make([]domain.Flag, 0, 8)
	seen := make(map[string]bool)
	add := func(flags []domain.Flag) {
		for _, f := range flags {
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			merged = append(merged, f)
		}
	}

	add(calc.RedFlags(s, agg.Facts))
	add(agg.Hydraulics.Flags)
	add(agg.SludgeScale.Flags)
	if agg.Legacy != nil {
		add(agg.Legacy.Flags)
	}

	return merged
}

// efficiencySummary resolves the efficiency model inputs for the
// timeline: nominal efficiency from the SEDBUK lookup when a boiler was
// surveyed, the placeholder otherwise, with standing decay combining
// hardness scaling over the appliance's age and any sludge penalty.
func efficiencySummary(s *domain.Survey, agg *domain.AggregateResult) domain.EfficiencySummary {
	sum := domain.EfficiencySummary{
		NominalPct: calc.PlaceholderNominalPct,
		Source:     calc.SourcePlaceholder,
	}
	if agg.Sedbuk != nil {
		sum.NominalPct = agg.Sedbuk.NominalEfficiencyPct
		sum.Source = agg.Sedbuk.Source
	} else {
		sum.Notes = append(sum.Notes, "no boiler on record; efficiency modeled on the placeholder appliance")
	}

	if age, ok := calc.SystemAgeYears(s); ok {
		sum.AgeYears = age
	}
	sum.AgeDecayPct = efficiency.AgeDecayPct(agg.Facts.TenYearDecayPct, sum.AgeYears)
	if agg.SludgeScale.SludgePenaltyPct > 0 {
		sum.AgeDecayPct += agg.SludgeScale.SludgePenaltyPct
		sum.Notes = append(sum.Notes, fmt.Sprintf("standing decay includes a %.0f%% sludge penalty", agg.SludgeScale.SludgePenaltyPct))
	}

	sum.FullLoadPct = efficiency.CurrentEfficiencyPct(sum.NominalPct, sum.AgeDecayPct, 1.0)

	return sum
}

// compareSystems picks the two archetypes the timeline contrasts: the
// strongest fossil candidate against the heat pump. Combi drops to
// stored when gas is ruled out or the main cannot feed one.
func compareSystems(agg *domain.AggregateResult) []string {
	fossil := domain.SystemCombi
	if !agg.Hydraulics.CombiOK {
		fossil = domain.SystemStored
	}
	for _, f := range agg.RedFlags {
		if f.ID == "RF_NO_GAS" || f.ID == "RF_LOW_DYNAMIC_PRESSURE" {
			fossil = domain.SystemStored
		}
	}
	return []string{fossil, domain.SystemASHP}
}
