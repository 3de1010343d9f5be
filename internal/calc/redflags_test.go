package calc

import (
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

func TestRedFlags_NoGas(t *testing.T) {
	s := &domain.Survey{Services: &domain.Services{GasAvailable: bptr(false)}}
	flags := RedFlags(s, defaultFacts())

	if !hasFlag(flags, "RF_NO_GAS") {
		t.Fatalf("missing RF_NO_GAS in %v", flags)
	}
	for _, f := range flags {
		if f.ID == "RF_NO_GAS" && f.Severity != domain.SeverityFail {
			t.Errorf("RF_NO_GAS severity = %s, want fail", f.Severity)
		}
	}
}

func TestRedFlags_LowDynamicPressure(t *testing.T) {
	s := &domain.Survey{Infrastructure: &domain.Infrastructure{MainsDynamicBar: fptr(0.5)}}
	if flags := RedFlags(s, defaultFacts()); !hasFlag(flags, "RF_LOW_DYNAMIC_PRESSURE") {
		t.Errorf("missing RF_LOW_DYNAMIC_PRESSURE in %v", flags)
	}

	// 0.8 bar is the boundary and passes.
	s = &domain.Survey{Infrastructure: &domain.Infrastructure{MainsDynamicBar: fptr(0.8)}}
	if flags := RedFlags(s, defaultFacts()); hasFlag(flags, "RF_LOW_DYNAMIC_PRESSURE") {
		t.Errorf("0.8 bar should not flag, got %v", flags)
	}
}

func TestRedFlags_VentedBlocked(t *testing.T) {
	facts := defaultFacts()
	facts.VentedFeasible = false

	if flags := RedFlags(&domain.Survey{}, facts); !hasFlag(flags, "RF_VENTED_BLOCKED") {
		t.Errorf("missing RF_VENTED_BLOCKED in %v", flags)
	}
}

func TestRedFlags_OldBoiler(t *testing.T) {
	s := &domain.Survey{CurrentSystem: &domain.CurrentSystem{AgeYears: iptr(15)}}
	if flags := RedFlags(s, defaultFacts()); !hasFlag(flags, "RF_OLD_BOILER") {
		t.Errorf("missing RF_OLD_BOILER at 15 years in %v", flags)
	}

	s = &domain.Survey{CurrentSystem: &domain.CurrentSystem{AgeYears: iptr(14)}}
	if flags := RedFlags(s, defaultFacts()); hasFlag(flags, "RF_OLD_BOILER") {
		t.Errorf("14 years should not flag, got %v", flags)
	}
}

func TestRedFlags_CleanSurvey(t *testing.T) {
	if flags := RedFlags(&domain.Survey{}, defaultFacts()); len(flags) != 0 {
		t.Errorf("expected no flags for a clean survey, got %v", flags)
	}
}
