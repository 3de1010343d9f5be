// Package timeline builds the 24-hour comparison payload: two system
// archetypes simulated over one day on a shared 96-point quarter-hour
// grid. The builder is pure; identical inputs produce identical
// payloads, point for point.
package timeline

import (
	"fmt"

	"github.com/heatpath/survey-engine/internal/domain"
)

// BuildInput is the builder's contract. Demand96 must hold exactly
// TimelinePoints values, already resampled from the hourly simulation
// and bounded by the peak heat loss.
type BuildInput struct {
	SystemIDs      []string
	Demand96       []float64
	PeakHeatLossKw float64
	NominalPct     float64
	AgeDecayPct    float64
	Profile        *domain.LifestyleProfile
}

// Build assembles the chart payload: grid, demand, per-archetype
// series, on-bands and legend. Without a lifestyle profile the day runs
// on the default event set and the payload says so.
func Build(in BuildInput) domain.TimelinePayload {
	events := DefaultEvents()
	usedProfile := false
	if in.Profile != nil {
		events = EventsFromProfile(*in.Profile)
		usedProfile = true
	}
	dhw := aggregateEvents(events)

	payload := domain.TimelinePayload{
		SystemIDs:    in.SystemIDs,
		StepMinutes:  domain.TimelineStepMinutes,
		TimeMinutes:  Grid(),
		DemandHeatKw: in.Demand96,
		UsedProfile:  usedProfile,
	}

	for _, id := range in.SystemIDs {
		curve, ok := curveFor(id, in)
		if !ok {
			continue
		}
		payload.Series = append(payload.Series, buildSeries(curve, in.Demand96, dhw))
	}

	payload.Bands = ExtractBands(in.Demand96, dhw.TotalKw)
	payload.Legend = buildLegend(payload, dhw, usedProfile)

	return payload
}

func buildLegend(p domain.TimelinePayload, dhw dhwProfile, usedProfile bool) []string {
	legend := make([]string, 0, len(p.Series)+2)

	if usedProfile {
		legend = append(legend, "hot water events from the household profile")
	} else {
		legend = append(legend, "hot water events from the default day (no profile supplied)")
	}

	for _, s := range p.Series {
		switch s.PerformanceKind {
		case domain.PerformanceCop:
			legend = append(legend, fmt.Sprintf("%s: coefficient of performance (above 1)", s.Label))
		default:
			legend = append(legend, fmt.Sprintf("%s: seasonal efficiency (0 to 1)", s.Label))
		}
	}

	if dhw.HasColdFill {
		legend = append(legend, "cold-fill appliances draw unheated mains water and do not load the heating system")
	}

	return legend
}
