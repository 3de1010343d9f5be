package calc

import (
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

var (
	testErpPct = map[string]float64{"A": 90, "B": 86, "C": 82, "D": 78}
	testGcPct  = map[string]float64{"47-311-83": 89.2}
)

func TestSedbukLookup_GcNumber(t *testing.T) {
	b := &domain.Boiler{GcNumber: sptr("47-311-83")}
	r := SedbukLookup(b, testErpPct, testGcPct)

	if r.NominalEfficiencyPct != 89.2 {
		t.Errorf("nominal = %f, want 89.2", r.NominalEfficiencyPct)
	}
	if r.Source != SourceGcNumber {
		t.Errorf("source = %s, want %s", r.Source, SourceGcNumber)
	}
}

func TestSedbukLookup_ErpBandFallback(t *testing.T) {
	b := &domain.Boiler{
		GcNumber: sptr("99-999-99"),
		ErpBand:  sptr("b"),
	}
	r := SedbukLookup(b, testErpPct, testGcPct)

	if r.NominalEfficiencyPct != 86 || r.Band != "B" {
		t.Errorf("nominal = %f band=%s, want 86/B", r.NominalEfficiencyPct, r.Band)
	}
	if r.Source != SourceErpBand {
		t.Errorf("source = %s, want %s", r.Source, SourceErpBand)
	}
	if !hasNote(r.Notes, "not in the efficiency dataset") {
		t.Errorf("missing unknown-GC note in %v", r.Notes)
	}
}

func TestSedbukLookup_Placeholder(t *testing.T) {
	r := SedbukLookup(&domain.Boiler{}, testErpPct, testGcPct)

	if r.NominalEfficiencyPct != PlaceholderNominalPct {
		t.Errorf("nominal = %f, want the %f placeholder", r.NominalEfficiencyPct, PlaceholderNominalPct)
	}
	if r.Source != SourcePlaceholder {
		t.Errorf("source = %s, want %s", r.Source, SourcePlaceholder)
	}
	if !hasNote(r.Notes, "placeholder") {
		t.Errorf("missing placeholder note in %v", r.Notes)
	}
}

func TestBoilerSizing_Oversized(t *testing.T) {
	facts := defaultFacts()
	facts.PeakHeatLossKw = 6

	b := &domain.Boiler{NominalKw: fptr(30)}
	r := BoilerSizing(b, facts)

	// 6*1.1 + 3 = 9.6 kW required; 30/9.6 = 3.125x
	if !almostEqual(r.RequiredKw, 9.6, 1e-9) {
		t.Errorf("required = %f, want 9.6", r.RequiredKw)
	}
	if !almostEqual(r.OversizeFactor, 3.125, 1e-9) {
		t.Errorf("oversize = %f, want 3.125", r.OversizeFactor)
	}
	if !r.CyclingRisk {
		t.Error("3.1x oversize should carry a cycling risk")
	}
	if !hasNote(r.Notes, "600 kWh/yr") {
		t.Errorf("missing purge-loss note in %v", r.Notes)
	}
}

func TestBoilerSizing_WellSized(t *testing.T) {
	facts := defaultFacts()
	facts.PeakHeatLossKw = 6

	b := &domain.Boiler{NominalKw: fptr(12)}
	r := BoilerSizing(b, facts)

	// 12/9.6 = 1.25x, inside the 1.6x limit.
	if r.CyclingRisk {
		t.Errorf("1.25x oversize flagged as cycling: %+v", r)
	}
	if len(r.Notes) != 0 {
		t.Errorf("unexpected notes %v", r.Notes)
	}
}

func TestBoilerSizing_NoNominalOutput(t *testing.T) {
	r := BoilerSizing(&domain.Boiler{}, defaultFacts())

	if r.NominalKw != 0 || r.CyclingRisk {
		t.Errorf("nominal = %f cycling=%v without an output", r.NominalKw, r.CyclingRisk)
	}
	if !hasNote(r.Notes, "oversize check skipped") {
		t.Errorf("missing skip note in %v", r.Notes)
	}
}
