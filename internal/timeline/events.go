package timeline

import "github.com/heatpath/survey-engine/internal/domain"

// Draw calibration. Thermal intensities are point-of-use heat draw in
// kW; cold-fill intensities are mains flow in L/min.
const (
	sinkDrawKw     = 6.0
	bathDrawKw     = 18.0
	dishwasherLpm  = 8.0
	washingMachLpm = 7.0
)

// Event placement, minutes from midnight. The morning sink lands at
// 07:00; a second simultaneous bathroom overlaps it ten minutes in. The
// evening draw sits at 19:00, upgraded to a 19:30 bath for bath
// households. Wet appliances run off-peak of the hot water draws.
const (
	morningSinkStart = 420
	morningSinkEnd   = 440
	secondSinkStart  = 430
	secondSinkEnd    = 450
	eveningSinkStart = 1140
	eveningSinkEnd   = 1160
	eveningBathStart = 1170
	eveningBathEnd   = 1210
	dishwasherStart  = 1260
	dishwasherEnd    = 1305
	washingMachStart = 480
	washingMachEnd   = 525
)

// DefaultEvents is the event set used when the survey carries no
// lifestyle profile: a typical morning sink draw and an evening bath.
func DefaultEvents() []domain.DemandEvent {
	return []domain.DemandEvent{
		{Kind: domain.EventSink, StartMin: morningSinkStart, EndMin: morningSinkEnd, Intensity: sinkDrawKw},
		{Kind: domain.EventBath, StartMin: eveningBathStart, EndMin: eveningBathEnd, Intensity: bathDrawKw},
	}
}

// EventsFromProfile derives the day's draws from the household profile.
// A disabled profile section contributes nothing: all peaks off with no
// appliances yields an empty day. The bath upgrades the evening sink
// draw when both are in play; the morning sink is never upgraded, so a
// morning-only household keeps its early sink draw.
func EventsFromProfile(p domain.LifestyleProfile) []domain.DemandEvent {
	var events []domain.DemandEvent

	if p.MorningPeakEnabled {
		events = append(events, domain.DemandEvent{
			Kind: domain.EventSink, StartMin: morningSinkStart, EndMin: morningSinkEnd, Intensity: sinkDrawKw,
		})
		if p.TwoSimultaneousBathrooms {
			events = append(events, domain.DemandEvent{
				Kind: domain.EventSink, StartMin: secondSinkStart, EndMin: secondSinkEnd, Intensity: sinkDrawKw,
			})
		}
	}

	if p.EveningPeakEnabled {
		if p.HasBath {
			events = append(events, domain.DemandEvent{
				Kind: domain.EventBath, StartMin: eveningBathStart, EndMin: eveningBathEnd, Intensity: bathDrawKw,
			})
		} else {
			events = append(events, domain.DemandEvent{
				Kind: domain.EventSink, StartMin: eveningSinkStart, EndMin: eveningSinkEnd, Intensity: sinkDrawKw,
			})
		}
	}

	if p.HasWashingMachine {
		events = append(events, domain.DemandEvent{
			Kind: domain.EventWashingMachine, StartMin: washingMachStart, EndMin: washingMachEnd, Intensity: washingMachLpm,
		})
	}
	if p.HasDishwasher {
		events = append(events, domain.DemandEvent{
			Kind: domain.EventDishwasher, StartMin: dishwasherStart, EndMin: dishwasherEnd, Intensity: dishwasherLpm,
		})
	}

	return events
}

// dhwProfile is the per-point aggregation of the day's events over the
// grid. Thermal draws sum into TotalKw; cold-fill draws sum into
// ColdLpm. HasColdFill reports whether any cold-fill event exists at
// all, independent of grid coverage.
type dhwProfile struct {
	TotalKw     []float64
	Active      [][]domain.ActiveDraw
	ColdLpm     []float64
	HasColdFill bool
}

func aggregateEvents(events []domain.DemandEvent) dhwProfile {
	p := dhwProfile{
		TotalKw: make([]float64, domain.TimelinePoints),
		Active:  make([][]domain.ActiveDraw, domain.TimelinePoints),
	}

	for _, e := range events {
		if !e.Thermal() {
			p.HasColdFill = true
		}
	}
	if p.HasColdFill {
		p.ColdLpm = make([]float64, domain.TimelinePoints)
	}

	for i := 0; i < domain.TimelinePoints; i++ {
		t := i * domain.TimelineStepMinutes
		for _, e := range events {
			if !e.ActiveAt(t) {
				continue
			}
			if e.Thermal() {
				p.TotalKw[i] += e.Intensity
				p.Active[i] = append(p.Active[i], domain.ActiveDraw{
					Kind:     e.Kind,
					StartMin: e.StartMin,
					EndMin:   e.EndMin,
					DrawKw:   e.Intensity,
				})
			} else {
				p.ColdLpm[i] += e.Intensity
			}
		}
	}

	return p
}
