package timeline

import "github.com/heatpath/survey-engine/internal/domain"

// shOnThresholdKw separates genuine space heating from interpolation
// dust near zero.
const shOnThresholdKw = 0.05

// ExtractBands summarizes the day as maximal contiguous on-intervals:
// one sh_on band per space heating run, one dhw_on band per hot water
// run. Band ends are exclusive, so a single on-point still yields a
// well-formed 15-minute band.
func ExtractBands(demand, dhwTotal []float64) []domain.Band {
	bands := onRuns(demand, domain.BandSpaceHeat, func(v float64) bool { return v > shOnThresholdKw })
	bands = append(bands, onRuns(dhwTotal, domain.BandHotWater, func(v float64) bool { return v > 0 })...)
	return bands
}

func onRuns(series []float64, kind string, on func(float64) bool) []domain.Band {
	var out []domain.Band
	start := -1
	for i, v := range series {
		if on(v) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, domain.Band{
				Kind:     kind,
				StartMin: start * domain.TimelineStepMinutes,
				EndMin:   i * domain.TimelineStepMinutes,
			})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, domain.Band{
			Kind:     kind,
			StartMin: start * domain.TimelineStepMinutes,
			EndMin:   len(series) * domain.TimelineStepMinutes,
		})
	}
	return out
}
