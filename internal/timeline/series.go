package timeline

import (
	"github.com/heatpath/survey-engine/internal/domain"
	"github.com/heatpath/survey-engine/internal/efficiency"
)

// archetypeCurve is one system archetype's behavior over the day. The
// performance kind is a property of the concrete type, never a runtime
// flag, so an eta series and a COP series cannot be built from the same
// variant by accident.
type archetypeCurve interface {
	id() string
	label() string
	kind() domain.PerformanceKind
	capacityKw() float64
	// deliveredKw is the heat the appliance produces at one point given
	// the space heating demand and the thermal hot water draw.
	deliveredKw(demandKw, dhwKw float64) float64
	// performance evaluates the efficiency value for the series at one
	// load fraction: eta fraction in (0,1] or COP above 1.
	performance(loadFraction float64) float64
}

// combiCurve: instantaneous appliance. Hot water interrupts and stacks
// on top of space heating, so the draw passes through the burner and
// shifts the load point.
type combiCurve struct {
	nominalPct  float64
	ageDecayPct float64
	capKw       float64
}

func (c combiCurve) id() string { return domain.SystemCombi }

func (c combiCurve) label() string { return "Combi boiler" }

func (c combiCurve) kind() domain.PerformanceKind { return domain.PerformanceEta }

func (c combiCurve) capacityKw() float64 { return c.capKw }

func (c combiCurve) deliveredKw(demandKw, dhwKw float64) float64 {
	load := demandKw + dhwKw
	if load > c.capKw {
		load = c.capKw
	}
	return load
}

func (c combiCurve) performance(f float64) float64 {
	return efficiency.CurrentEfficiencyPct(c.nominalPct, c.ageDecayPct, f) / 100.0
}

// storedCurve: boiler plus cylinder. The store decouples draws from
// generation, so delivered heat follows space heating demand alone.
type storedCurve struct {
	nominalPct  float64
	ageDecayPct float64
	capKw       float64
}

func (c storedCurve) id() string { return domain.SystemStored }

func (c storedCurve) label() string { return "System boiler + cylinder" }

func (c storedCurve) kind() domain.PerformanceKind { return domain.PerformanceEta }

func (c storedCurve) capacityKw() float64 { return c.capKw }

func (c storedCurve) deliveredKw(demandKw, _ float64) float64 {
	if demandKw > c.capKw {
		return c.capKw
	}
	return demandKw
}

func (c storedCurve) performance(f float64) float64 {
	return efficiency.CurrentEfficiencyPct(c.nominalPct, c.ageDecayPct, f) / 100.0
}

// ashpCurve: air source heat pump sized to the peak load, COP falling
// with load.
type ashpCurve struct {
	capKw float64
}

func (c ashpCurve) id() string { return domain.SystemASHP }

func (c ashpCurve) label() string { return "Air source heat pump" }

func (c ashpCurve) kind() domain.PerformanceKind { return domain.PerformanceCop }

func (c ashpCurve) capacityKw() float64 { return c.capKw }

func (c ashpCurve) deliveredKw(demandKw, _ float64) float64 {
	if demandKw > c.capKw {
		return c.capKw
	}
	return demandKw
}

func (c ashpCurve) performance(f float64) float64 {
	return efficiency.CopAt(f)
}

// Archetype capacity sizing off the property's peak loss.
const (
	combiMinCapKw   = 24.0
	combiCapFactor  = 1.2
	storedCapFactor = 1.1
	storedDhwKw     = 3.0
	ashpMinCapKw    = 4.0
)

func curveFor(systemID string, in BuildInput) (archetypeCurve, bool) {
	switch systemID {
	case domain.SystemCombi:
		capKw := in.PeakHeatLossKw * combiCapFactor
		if capKw < combiMinCapKw {
			capKw = combiMinCapKw
		}
		return combiCurve{nominalPct: in.NominalPct, ageDecayPct: in.AgeDecayPct, capKw: capKw}, true
	case domain.SystemStored:
		return storedCurve{nominalPct: in.NominalPct, ageDecayPct: in.AgeDecayPct, capKw: in.PeakHeatLossKw*storedCapFactor + storedDhwKw}, true
	case domain.SystemASHP:
		capKw := in.PeakHeatLossKw
		if capKw < ashpMinCapKw {
			capKw = ashpMinCapKw
		}
		return ashpCurve{capKw: capKw}, true
	}
	return nil, false
}

func buildSeries(c archetypeCurve, demand []float64, dhw dhwProfile) domain.Series {
	s := domain.Series{
		SystemID:        c.id(),
		Label:           c.label(),
		PerformanceKind: c.kind(),
		HeatDeliveredKw: make([]float64, len(demand)),
		Efficiency:      make([]float64, len(demand)),
		DhwTotalKw:      dhw.TotalKw,
		DhwEventsActive: dhw.Active,
		ColdFlowLpm:     dhw.ColdLpm,
	}

	capKw := c.capacityKw()
	for i := range demand {
		delivered := c.deliveredKw(demand[i], dhw.TotalKw[i])
		s.HeatDeliveredKw[i] = delivered
		s.Efficiency[i] = c.performance(delivered / capKw)
	}

	return s
}
