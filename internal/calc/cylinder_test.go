package calc

import (
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

func TestCylinderVolumetrics_MinimumStore(t *testing.T) {
	r := CylinderVolumetrics(&domain.Survey{}, defaultFacts())

	// 2 occupants * 45 L = 90 L, lifted to the 120 L floor.
	if r.RecommendedStoreL != 120 {
		t.Errorf("store = %f, want the 120 L floor", r.RecommendedStoreL)
	}
	// 120 * 0.75 / 0.90 = 100
	if !almostEqual(r.SmartStoreL, 100, 1e-9) {
		t.Errorf("smart store = %f, want 100", r.SmartStoreL)
	}
	// 120 * 4.186 * 50 / 3600 = 6.9767 kWh
	if !almostEqual(r.ReheatKwh, 6.9767, 0.001) {
		t.Errorf("reheat = %f, want 6.98 kWh", r.ReheatKwh)
	}
}

func TestCylinderVolumetrics_BathHousehold(t *testing.T) {
	facts := defaultFacts()
	facts.Occupants = 4

	s := &domain.Survey{DHW: &domain.DHW{BathsPerDay: iptr(1)}}
	r := CylinderVolumetrics(s, facts)

	// 4*45 + 30 = 210
	if r.RecommendedStoreL != 210 {
		t.Errorf("store = %f, want 210", r.RecommendedStoreL)
	}
	// 210 * 0.75 / 0.90 = 175
	if !almostEqual(r.SmartStoreL, 175, 1e-9) {
		t.Errorf("smart store = %f, want 175", r.SmartStoreL)
	}
}

func TestCylinderVolumetrics_LifestyleBath(t *testing.T) {
	facts := defaultFacts()
	facts.Occupants = 3

	s := &domain.Survey{Lifestyle: &domain.LifestyleProfile{HasBath: true}}
	r := CylinderVolumetrics(s, facts)

	// 3*45 + 30 = 165; the bath allowance comes from the lifestyle profile.
	if r.RecommendedStoreL != 165 {
		t.Errorf("store = %f, want 165", r.RecommendedStoreL)
	}
	if len(r.Notes) == 0 {
		t.Error("sizing should always carry a summary note")
	}
}
