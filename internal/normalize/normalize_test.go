package normalize

import (
	"math"
	"testing"

	"github.com/heatpath/survey-engine/internal/config"
	"github.com/heatpath/survey-engine/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assumedField(facts domain.NormalizedFacts, fieldPath string) bool {
	for _, a := range facts.Assumptions {
		if a.FieldPath == fieldPath {
			return true
		}
	}
	return false
}

func TestNormalize_EmptySurvey(t *testing.T) {
	facts := Normalize(&domain.Survey{}, config.DefaultTables())

	if facts.Hardness != domain.HardnessModerate {
		t.Errorf("hardness = %s, want moderate", facts.Hardness)
	}
	if facts.TenYearDecayPct != 4.0 {
		t.Errorf("decay = %f, want 4", facts.TenYearDecayPct)
	}
	if facts.Bedrooms != 3 || facts.Occupants != 2 || facts.Bathrooms != 1 {
		t.Errorf("household = %d/%d/%d, want 3/2/1", facts.Bedrooms, facts.Occupants, facts.Bathrooms)
	}
	// 3.0 + 1.25*3 = 6.75
	if !almostEqual(facts.PeakHeatLossKw, 6.75, 1e-9) {
		t.Errorf("peak heat loss = %f, want 6.75", facts.PeakHeatLossKw)
	}
	if !facts.HeatLossAssumed {
		t.Error("heat loss should be marked assumed")
	}
	// 6.75 * 6 = 40.5
	if !almostEqual(facts.SystemVolumeL, 40.5, 1e-9) {
		t.Errorf("volume = %f, want 40.5", facts.SystemVolumeL)
	}
	if facts.VolumeBasis != domain.VolumeFromHeatLoss {
		t.Errorf("volume basis = %s, want %s", facts.VolumeBasis, domain.VolumeFromHeatLoss)
	}
	if !facts.VentedFeasible {
		t.Error("vented should stay feasible without a loft conversion")
	}
	if facts.Signature != domain.OccupancyUnknown {
		t.Errorf("signature = %s, want unknown", facts.Signature)
	}

	for _, path := range []string{
		"occupancy.signature",
		"property.postcode",
		"property.bedrooms",
		"property.occupants",
		"property.bathrooms",
		"property.peakHeatLossKw",
		"property.radiatorCount",
	} {
		if !assumedField(facts, path) {
			t.Errorf("missing assumption for %s", path)
		}
	}
}

func TestNormalize_MeasuredSurvey_NoAssumptions(t *testing.T) {
	s := &domain.Survey{
		Property: &domain.Property{
			Postcode:       "LU1 2AB",
			Bedrooms:       4,
			Occupants:      3,
			Bathrooms:      2,
			PeakHeatLossKw: fptr(9.5),
			RadiatorCount:  8,
		},
		Occupancy: &domain.Occupancy{Signature: "professional"},
	}
	facts := Normalize(s, config.DefaultTables())

	if len(facts.Assumptions) != 0 {
		t.Errorf("expected no assumptions, got %+v", facts.Assumptions)
	}
	if facts.Hardness != domain.HardnessVeryHard {
		t.Errorf("hardness = %s, want very_hard for LU prefix", facts.Hardness)
	}
	if facts.TenYearDecayPct != 10.0 {
		t.Errorf("decay = %f, want 10", facts.TenYearDecayPct)
	}
	if facts.PeakHeatLossKw != 9.5 || facts.HeatLossAssumed {
		t.Errorf("measured heat loss not carried through: %f assumed=%v", facts.PeakHeatLossKw, facts.HeatLossAssumed)
	}
	// 8 radiators * 10 L
	if facts.SystemVolumeL != 80 || facts.VolumeBasis != domain.VolumeFromRadiators {
		t.Errorf("volume = %f basis=%s, want 80 from radiators", facts.SystemVolumeL, facts.VolumeBasis)
	}
	if facts.Signature != domain.OccupancyProfessional {
		t.Errorf("signature = %s, want professional", facts.Signature)
	}
}

func TestNormalize_PostcodeHardness(t *testing.T) {
	cases := []struct {
		postcode string
		want     domain.Hardness
	}{
		{"lu1 2ab", domain.HardnessVeryHard}, // case folded
		{"SO15 3FG", domain.HardnessHard},
		{"ZZ9 9ZZ", domain.HardnessModerate}, // outside the table
	}
	for _, c := range cases {
		s := &domain.Survey{Property: &domain.Property{Postcode: c.postcode}}
		facts := Normalize(s, config.DefaultTables())
		if facts.Hardness != c.want {
			t.Errorf("%s: hardness = %s, want %s", c.postcode, facts.Hardness, c.want)
		}
	}
}

func TestNormalize_LoftConversionBlocksVented(t *testing.T) {
	s := &domain.Survey{Property: &domain.Property{HasLoftConversion: true}}
	facts := Normalize(s, config.DefaultTables())
	if facts.VentedFeasible {
		t.Error("loft conversion should remove header-tank space")
	}
}

func TestNormalize_ZeroHeatLossFallsBack(t *testing.T) {
	s := &domain.Survey{Property: &domain.Property{Bedrooms: 2, PeakHeatLossKw: fptr(0)}}
	facts := Normalize(s, config.DefaultTables())
	// 3.0 + 1.25*2 = 5.5
	if !almostEqual(facts.PeakHeatLossKw, 5.5, 1e-9) {
		t.Errorf("peak heat loss = %f, want the 5.5 fallback", facts.PeakHeatLossKw)
	}
	if !facts.HeatLossAssumed {
		t.Error("zero measurement should count as missing")
	}
}

func TestCanonicalSignature(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.OccupancySignature
	}{
		{"professional", domain.OccupancyProfessional},
		{"steady", domain.OccupancySteady},
		{"steady_home", domain.OccupancySteady},
		{"shift", domain.OccupancyShift},
		{"shift_worker", domain.OccupancyShift},
		{"", domain.OccupancyUnknown},
		{"nightowl", domain.OccupancyUnknown},
	}
	for _, c := range cases {
		if got := CanonicalSignature(c.raw); got != c.want {
			t.Errorf("%q: got %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestTenYearDecayPct(t *testing.T) {
	cases := []struct {
		h    domain.Hardness
		want float64
	}{
		{domain.HardnessSoft, 2},
		{domain.HardnessModerate, 4},
		{domain.HardnessHard, 7},
		{domain.HardnessVeryHard, 10},
	}
	for _, c := range cases {
		if got := TenYearDecayPct(c.h); got != c.want {
			t.Errorf("%s: got %f, want %f", c.h, got, c.want)
		}
	}
}
