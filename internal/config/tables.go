package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heatpath/survey-engine/internal/domain"
)

// Tables holds the calibration lookup data the engine treats as
// immutable process-wide constants. They are loaded once at startup and
// never written afterwards; every run of the engine reads the same
// injected instance.
type Tables struct {
	// HardnessByPrefix maps a postcode area prefix to its water
	// hardness category. Lookup is longest-prefix on the uppercased
	// postcode.
	HardnessByPrefix map[string]domain.Hardness `yaml:"hardness_by_prefix"`

	// ErpBandPct maps an ErP efficiency band letter to nominal
	// seasonal efficiency percent.
	ErpBandPct map[string]float64 `yaml:"erp_band_pct"`

	// GcNumberPct is a seed of GC appliance registrations with known
	// seasonal efficiency. Boilers outside the seed fall back to a
	// placeholder figure.
	GcNumberPct map[string]float64 `yaml:"gc_number_pct"`
}

// LoadTables reads calibration tables from a YAML file. An empty path
// returns the built-in defaults. A section missing from the file keeps
// its default contents; a present section replaces the default wholesale.
func LoadTables(path string) (*Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file: %w", err)
	}

	var loaded Tables
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, domain.WrapEngineError(domain.ErrTablesInvalid.Code, "parse tables YAML", err)
	}

	if loaded.HardnessByPrefix != nil {
		t.HardnessByPrefix = loaded.HardnessByPrefix
	}
	if loaded.ErpBandPct != nil {
		t.ErpBandPct = loaded.ErpBandPct
	}
	if loaded.GcNumberPct != nil {
		t.GcNumberPct = loaded.GcNumberPct
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// HardnessFor resolves a postcode to its hardness category by longest
// matching prefix. The boolean reports whether any prefix matched.
func (t *Tables) HardnessFor(postcode string) (domain.Hardness, bool) {
	pc := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if pc == "" {
		return "", false
	}

	best := ""
	for prefix := range t.HardnessByPrefix {
		if strings.HasPrefix(pc, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", false
	}
	return t.HardnessByPrefix[best], true
}

func (t *Tables) validate() error {
	var problems []string

	for prefix, h := range t.HardnessByPrefix {
		switch h {
		case domain.HardnessSoft, domain.HardnessModerate, domain.HardnessHard, domain.HardnessVeryHard:
		default:
			problems = append(problems, fmt.Sprintf("hardness_by_prefix[%s]: unknown category %q", prefix, h))
		}
	}
	for band, pct := range t.ErpBandPct {
		if pct <= 0 || pct > 100 {
			problems = append(problems, fmt.Sprintf("erp_band_pct[%s]: %v out of range", band, pct))
		}
	}
	for gc, pct := range t.GcNumberPct {
		if pct <= 0 || pct > 100 {
			problems = append(problems, fmt.Sprintf("gc_number_pct[%s]: %v out of range", gc, pct))
		}
	}

	if len(problems) > 0 {
		return &domain.EngineError{
			Code:    domain.ErrTablesInvalid.Code,
			Message: fmt.Sprintf("%s: %v", domain.ErrTablesInvalid.Message, problems),
		}
	}
	return nil
}

// DefaultTables returns the compiled-in calibration data. The hardness
// map covers the postcode areas with pronounced water chemistry; areas
// not listed are treated as moderate by the normalizer.
func DefaultTables() *Tables {
	return &Tables{
		HardnessByPrefix: map[string]domain.Hardness{
			// chalk aquifer belt
			"LU": domain.HardnessVeryHard,
			"SG": domain.HardnessVeryHard,
			"CM": domain.HardnessVeryHard,
			"SS": domain.HardnessVeryHard,
			"CB": domain.HardnessVeryHard,
			"AL": domain.HardnessHard,
			"MK": domain.HardnessHard,
			"PE": domain.HardnessHard,
			"NR": domain.HardnessHard,
			"IP": domain.HardnessHard,
			"CO": domain.HardnessHard,
			"OX": domain.HardnessHard,
			"RG": domain.HardnessHard,
			"SL": domain.HardnessHard,
			"GU": domain.HardnessHard,
			"KT": domain.HardnessHard,
			"ME": domain.HardnessHard,
			"CT": domain.HardnessHard,
			"BN": domain.HardnessHard,
			"PO": domain.HardnessHard,
			"SO": domain.HardnessHard,
			"SN": domain.HardnessHard,
			// mixed geology
			"B":  domain.HardnessModerate,
			"NG": domain.HardnessModerate,
			"LE": domain.HardnessModerate,
			"S":  domain.HardnessModerate,
			"BS": domain.HardnessModerate,
			// upland surface water
			"G":  domain.HardnessSoft,
			"EH": domain.HardnessSoft,
			"AB": domain.HardnessSoft,
			"IV": domain.HardnessSoft,
			"DD": domain.HardnessSoft,
			"KA": domain.HardnessSoft,
			"CA": domain.HardnessSoft,
			"LL": domain.HardnessSoft,
			"SA": domain.HardnessSoft,
			"CF": domain.HardnessSoft,
			"PL": domain.HardnessSoft,
			"TR": domain.HardnessSoft,
			"EX": domain.HardnessSoft,
			"BD": domain.HardnessSoft,
		},
		ErpBandPct: map[string]float64{
			"A": 90,
			"B": 86,
			"C": 82,
			"D": 78,
			"E": 74,
			"F": 70,
			"G": 65,
		},
		GcNumberPct: map[string]float64{
			"47-311-83": 89.2,
			"47-267-14": 88.6,
			"41-019-04": 78.0,
			"44-331-02": 81.5,
		},
	}
}
