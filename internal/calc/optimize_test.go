package calc

import (
	"testing"

	"github.com/heatpath/survey-engine/internal/domain"
)

func TestSystemOptimization_HeadroomBands(t *testing.T) {
	cases := []struct {
		name     string
		volumeL  float64
		peakKw   float64
		wantTemp int
		wantPct  float64
	}{
		// 120/10 = 12 L/kW: 45°C, 6% + 2% weather comp
		{"generous emitters", 120, 10, 45, 8},
		// 100/10 = 10 L/kW: 55°C, 4% + 2%
		{"moderate emitters", 100, 10, 55, 6},
		// 40.5/6.75 = 6 L/kW: 65°C, 1% + 2%
		{"tight emitters", 40.5, 6.75, 65, 3},
	}
	for _, c := range cases {
		facts := defaultFacts()
		facts.SystemVolumeL = c.volumeL
		facts.PeakHeatLossKw = c.peakKw

		r := SystemOptimization(&domain.Survey{}, facts)
		if r.FlowTempC != c.wantTemp {
			t.Errorf("%s: flow = %d, want %d", c.name, r.FlowTempC, c.wantTemp)
		}
		if !almostEqual(r.EstSavingPct, c.wantPct, 1e-9) {
			t.Errorf("%s: saving = %f, want %f", c.name, r.EstSavingPct, c.wantPct)
		}
		if !r.WeatherCompensation {
			t.Errorf("%s: weather compensation should always be recommended", c.name)
		}
	}
}

func TestSystemOptimization_TightHeadroomNote(t *testing.T) {
	r := SystemOptimization(&domain.Survey{}, defaultFacts())

	if r.FlowTempC != 65 {
		t.Fatalf("flow = %d, want 65 on default facts", r.FlowTempC)
	}
	if !hasNote(r.Notes, "upsizing radiators") {
		t.Errorf("missing upsizing note in %v", r.Notes)
	}
}

func TestSystemOptimization_ZeroPeakLoss(t *testing.T) {
	facts := defaultFacts()
	facts.PeakHeatLossKw = 0

	r := SystemOptimization(&domain.Survey{}, facts)
	if r.FlowTempC != 65 {
		t.Errorf("flow = %d, want the conservative 65 when headroom is undefined", r.FlowTempC)
	}
}
