package calc

import (
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

func TestSludgeVsScale_AgedUnfiltered(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{AgeYears: iptr(12)}}
	r := SludgeVsScale(s, defaultFacts())

	if r.SludgePenaltyPct != SludgePenaltyPct {
		t.Errorf("sludge = %f, want the fixed %f", r.SludgePenaltyPct, SludgePenaltyPct)
	}
	// 4%/10yr * 12yr = 4.8
	if !almostEqual(r.ScalePenaltyPct, 4.8, 1e-9) {
		t.Errorf("scale = %f, want 4.8", r.ScalePenaltyPct)
	}
	if r.DominantRisk != "sludge" {
		t.Errorf("dominant = %s, want sludge", r.DominantRisk)
	}
	if !hasFlag(r.Flags, "RF_SLUDGED_CIRCUIT") {
		t.Errorf("missing RF_SLUDGED_CIRCUIT in %v", r.Flags)
	}
}

func TestSludgeVsScale_FilteredCircuit(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{
		AgeYears:       iptr(12),
		MagneticFilter: bptr(true),
	}}
	r := SludgeVsScale(s, defaultFacts())

	if r.SludgePenaltyPct != 2 {
		t.Errorf("sludge = %f, want the filtered 2", r.SludgePenaltyPct)
	}
	if r.DominantRisk != "scale" {
		t.Errorf("dominant = %s, want scale", r.DominantRisk)
	}
	if hasFlag(r.Flags, "RF_SLUDGED_CIRCUIT") {
		t.Error("a filtered circuit should not flag as sludged")
	}
}

func TestSludgeVsScale_YoungSystem(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{AgeYears: iptr(5)}}
	r := SludgeVsScale(s, defaultFacts())

	if r.SludgePenaltyPct != 1 {
		t.Errorf("sludge = %f, want 1 for a young circuit", r.SludgePenaltyPct)
	}
	// 4%/10yr * 5yr = 2.0
	if !almostEqual(r.ScalePenaltyPct, 2.0, 1e-9) {
		t.Errorf("scale = %f, want 2.0", r.ScalePenaltyPct)
	}
}

func TestSludgeVsScale_UnknownAge(t *testing.T) {
	r := SludgeVsScale(&domain.Survey{}, defaultFacts())

	if r.SludgePenaltyPct != 0 || r.ScalePenaltyPct != 0 {
		t.Errorf("penalties %f/%f without an age, want zero", r.SludgePenaltyPct, r.ScalePenaltyPct)
	}
	if r.DominantRisk != "balanced" {
		t.Errorf("dominant = %s, want balanced", r.DominantRisk)
	}
	if !hasNote(r.Notes, "age unknown") {
		t.Errorf("missing unknown-age note in %v", r.Notes)
	}
}

func TestSludgeVsScale_ScaleCapAndHardWaterNote(t *testing.T) {
	facts := defaultFacts()
	facts.Hardness = domain.HardnessVeryHard
	facts.TenYearDecayPct = 10

	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{AgeYears: iptr(20)}}
	r := SludgeVsScale(s, facts)

	// 10%/10yr * 20yr = 20, capped at 12.
	if r.ScalePenaltyPct != 12 {
		t.Errorf("scale = %f, want the 12 cap", r.ScalePenaltyPct)
	}
	if r.DominantRisk != "scale" {
		t.Errorf("dominant = %s, want scale", r.DominantRisk)
	}
	if !hasNote(r.Notes, "scale protection") {
		t.Errorf("missing hard-water note in %v", r.Notes)
	}
}

func TestSystemAgeYears_BoilerAgePreferred(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{
		AgeYears: iptr(20),
		Boiler:   &domain.Boiler{AgeYears: iptr(10)},
	}}

	age, ok := SystemAgeYears(s)
	if !ok || age != 10 {
		t.Errorf("age = %d ok=%v, want the boiler's 10", age, ok)
	}

	age, ok = SystemAgeYears(&domain.Survey{})
	if ok || age != 0 {
		t.Errorf("age = %d ok=%v for no system, want 0/false", age, ok)
	}
}
