package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }
func sptr(v string) *string   { return &v }

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func hasFlag(flags []domain.Flag, id string) bool {
	for _, f := range flags {
		if f.ID == id {
			return true
		}
	}
	return false
}

func hasNote(notes []string, substr string) bool {
	for _, n := range notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func defaultFacts() domain.NormalizedFacts {
	return domain.NormalizedFacts{
		Hardness:        domain.HardnessModerate,
		SystemVolumeL:   40.5,
		VolumeBasis:     domain.VolumeFromHeatLoss,
		VentedFeasible:  true,
		TenYearDecayPct: 4,
		Signature:       domain.OccupancyUnknown,
		PeakHeatLossKw:  6.75,
		HeatLossAssumed: true,
		Bedrooms:        3,
		Occupants:       2,
		Bathrooms:       1,
	}
}

func TestHydraulicSafety_Defaults(t *testing.T) {
	r := HydraulicSafety(&domain.Survey{}, defaultFacts())

	if r.StaticBar != 2.0 {
		t.Errorf("static = %f, want the 2.0 default", r.StaticBar)
	}
	// 2.0 * 0.7 = 1.4
	if !almostEqual(r.DynamicBar, 1.4, 1e-9) {
		t.Errorf("dynamic = %f, want 1.4", r.DynamicBar)
	}
	if r.DynamicFlowLpm != 10 || !r.FlowAssumed {
		t.Errorf("flow = %f assumed=%v, want 10 assumed", r.DynamicFlowLpm, r.FlowAssumed)
	}
	// 1.4 bar / 10 L/min clears the combi bar but not the unvented one.
	if !r.CombiOK {
		t.Error("default main should support a combi")
	}
	if r.UnventedOK {
		t.Error("default main should not support an unvented cylinder")
	}
	if r.Inconsistent {
		t.Error("defaults cannot be inconsistent")
	}
	if len(r.Assumptions) != 3 {
		t.Errorf("assumptions = %d, want 3 substituted readings", len(r.Assumptions))
	}
	if !hasNote(r.Notes, "unvented") {
		t.Errorf("missing unvented shortfall note in %v", r.Notes)
	}
}

func TestHydraulicSafety_MeasuredGoodMain(t *testing.T) {
	s := &domain.Survey{Infrastructure: &domain.Infrastructure{
		MainsStaticBar:  fptr(3.0),
		MainsDynamicBar: fptr(2.1),
		DynamicFlowLpm:  fptr(16),
	}}
	r := HydraulicSafety(s, defaultFacts())

	if !r.CombiOK || !r.UnventedOK {
		t.Errorf("combiOK=%v unventedOK=%v, want both on a strong main", r.CombiOK, r.UnventedOK)
	}
	if r.FlowAssumed || len(r.Assumptions) != 0 {
		t.Errorf("measured main should carry no assumptions, got %+v", r.Assumptions)
	}
	if len(r.Flags) != 0 || len(r.Notes) != 0 {
		t.Errorf("unexpected flags %v or notes %v", r.Flags, r.Notes)
	}
}

func TestHydraulicSafety_InconsistentReadings(t *testing.T) {
	s := &domain.Survey{Infrastructure: &domain.Infrastructure{
		MainsStaticBar:  fptr(1.5),
		MainsDynamicBar: fptr(2.5),
		DynamicFlowLpm:  fptr(12),
	}}
	r := HydraulicSafety(s, defaultFacts())

	if !r.Inconsistent {
		t.Error("dynamic 2.5 over static 1.5 should read as inconsistent")
	}
	if !hasFlag(r.Flags, "RF_PRESSURE_INCONSISTENT") {
		t.Errorf("missing RF_PRESSURE_INCONSISTENT in %v", r.Flags)
	}
}

func TestHydraulicSafety_GaugeTolerance(t *testing.T) {
	// 2.2 over 2.0 stays inside the 0.3 bar gauge tolerance.
	s := &domain.Survey{Infrastructure: &domain.Infrastructure{
		MainsStaticBar:  fptr(2.0),
		MainsDynamicBar: fptr(2.2),
		DynamicFlowLpm:  fptr(12),
	}}
	r := HydraulicSafety(s, defaultFacts())

	if r.Inconsistent || hasFlag(r.Flags, "RF_PRESSURE_INCONSISTENT") {
		t.Error("readings within gauge tolerance should not flag")
	}
}

func TestHydraulicSafety_WeakMain(t *testing.T) {
	s := &domain.Survey{Infrastructure: &domain.Infrastructure{
		MainsStaticBar:  fptr(1.0),
		MainsDynamicBar: fptr(0.5),
		DynamicFlowLpm:  fptr(9),
	}}
	r := HydraulicSafety(s, defaultFacts())

	if r.CombiOK || r.UnventedOK {
		t.Errorf("combiOK=%v unventedOK=%v on a 0.5 bar main", r.CombiOK, r.UnventedOK)
	}
	if !hasNote(r.Notes, "instantaneous") {
		t.Errorf("missing combi shortfall note in %v", r.Notes)
	}
}

func TestLegacyHydraulics_Microbore(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{PipeworkMm: iptr(8)}}
	r := LegacyHydraulics(s, defaultFacts())

	if !r.Microbore || !r.FlowRestricted {
		t.Errorf("microbore=%v restricted=%v for 8mm pipework", r.Microbore, r.FlowRestricted)
	}
	if !hasFlag(r.Flags, "RF_MICROBORE") {
		t.Errorf("missing RF_MICROBORE in %v", r.Flags)
	}
}

func TestLegacyHydraulics_DefaultBore(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{}}
	r := LegacyHydraulics(s, defaultFacts())

	if r.PipeworkMm != 22 {
		t.Errorf("bore = %d, want the 22mm default", r.PipeworkMm)
	}
	if !hasNote(r.Notes, "22mm") {
		t.Errorf("missing default-bore note in %v", r.Notes)
	}
	if r.Microbore || r.FlowRestricted {
		t.Error("22mm at 6.75 kW should be unrestricted")
	}
}

func TestLegacyHydraulics_HighLoadRestriction(t *testing.T) {
	facts := defaultFacts()
	facts.PeakHeatLossKw = 25

	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{PipeworkMm: iptr(22)}}
	r := LegacyHydraulics(s, facts)

	// 0.12 * (25/12)^2 = 0.52 bar, over the 0.35 limit.
	if r.Microbore {
		t.Error("22mm is not microbore")
	}
	if !r.FlowRestricted {
		t.Error("25 kW through 22mm should be flow restricted")
	}
	if !hasNote(r.Notes, "index circuit") {
		t.Errorf("missing index-circuit note in %v", r.Notes)
	}
}

func TestIndexCircuitDropBar(t *testing.T) {
	// Calibration point: 12 kW on 22mm is 0.12 bar.
	if got := indexCircuitDropBar(12, 22); !almostEqual(got, 0.12, 1e-9) {
		t.Errorf("drop(12,22) = %f, want 0.12", got)
	}
	// Doubling the load quadruples the drop.
	if got := indexCircuitDropBar(24, 22); !almostEqual(got, 0.48, 1e-9) {
		t.Errorf("drop(24,22) = %f, want 0.48", got)
	}
	// Halving the bore multiplies the drop by 2^5.
	if got := indexCircuitDropBar(12, 11); !almostEqual(got, 3.84, 1e-9) {
		t.Errorf("drop(12,11) = %f, want 3.84", got)
	}
}
