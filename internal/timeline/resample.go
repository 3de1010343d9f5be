package timeline

import "github.com/heatpath/survey-engine/internal/domain"

// Grid returns the shared time axis: 96 points at 15-minute spacing,
// minute 0 through minute 1425.
func Grid() []int {
	out := make([]int, domain.TimelinePoints)
	for i := range out {
		out[i] = i * domain.TimelineStepMinutes
	}
	return out
}

// Resample96 expands 24 hourly values onto the quarter-hour grid by
// piecewise-linear interpolation. The day wraps: the segment leaving
// hour 23 interpolates toward hour 0, so the series closes on itself.
// A grid point landing exactly on an hour reproduces that hour's value;
// interpolated values never drop below zero.
func Resample96(hourly [24]float64) []float64 {
	out := make([]float64, domain.TimelinePoints)
	for i := range out {
		t := i * domain.TimelineStepMinutes
		h := (t / 60) % 24
		next := (h + 1) % 24
		frac := float64(t%60) / 60.0
		v := hourly[h] + (hourly[next]-hourly[h])*frac
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}
