package domain

// Timeline grid geometry: one simulated day at 15-minute resolution.
const (
	TimelinePoints      = 96
	TimelineStepMinutes = 15
)

// System archetype identifiers used across series, eligibility and
// recommendations.
const (
	SystemCombi  = "combi"
	SystemStored = "stored"
	SystemASHP   = "ashp"
)

// PerformanceKind distinguishes combustion efficiency series from heat
// pump COP series. The two are never comparable on one axis: eta values
// stay in (0,1], COP values are strictly greater than 1.
type PerformanceKind string

const (
	PerformanceEta PerformanceKind = "eta"
	PerformanceCop PerformanceKind = "cop"
)

// Demand event kinds. Thermal draws heat the water at the point of use
// and contribute to DhwTotalKw; cold-fill appliances draw unheated mains
// water and appear only in ColdFlowLpm.
const (
	EventSink           = "sink"
	EventBath           = "bath"
	EventShower         = "shower"
	EventDishwasher     = "dishwasher"
	EventWashingMachine = "washing_machine"
)

// DemandEvent is one hot-water or cold-fill draw inside the simulated
// day. EndMin is exclusive and always greater than StartMin. Intensity is
// draw power in kW for thermal kinds and mains flow in L/min for
// cold-fill kinds.
type DemandEvent struct {
	Kind      string
	StartMin  int
	EndMin    int
	Intensity float64
}

// Thermal reports whether the event draws heated water.
func (e DemandEvent) Thermal() bool {
	switch e.Kind {
	case EventDishwasher, EventWashingMachine:
		return false
	}
	return true
}

// ActiveAt reports whether the event covers minute t. Activity is
// half-open: an event starting at t is active, one ending at t is not.
func (e DemandEvent) ActiveAt(t int) bool {
	return e.StartMin <= t && t < e.EndMin
}

// ActiveDraw is the wire form of an event overlapping one grid point.
type ActiveDraw struct {
	Kind     string  `json:"kind"`
	StartMin int     `json:"startMin"`
	EndMin   int     `json:"endMin"`
	DrawKw   float64 `json:"drawKw"`
}

// Band marks a maximal contiguous run of grid points where a subsystem
// is on. StartMin is inclusive, EndMin exclusive, EndMin > StartMin.
type Band struct {
	Kind     string `json:"kind"`
	StartMin int    `json:"startMin"`
	EndMin   int    `json:"endMin"`
}

// Band kinds.
const (
	BandSpaceHeat = "sh_on"
	BandHotWater  = "dhw_on"
)

// Series is the simulated day for one system archetype on the shared
// grid. ColdFlowLpm is nil, and therefore absent from the JSON payload,
// whenever no cold-fill appliance is modeled; absence and a zero-filled
// series mean different things to consumers.
type Series struct {
	SystemID        string          `json:"systemId"`
	Label           string          `json:"label"`
	PerformanceKind PerformanceKind `json:"performanceKind"`
	HeatDeliveredKw []float64       `json:"heatDeliveredKw"`
	Efficiency      []float64       `json:"efficiency"`
	DhwTotalKw      []float64       `json:"dhwTotalKw"`
	DhwEventsActive [][]ActiveDraw  `json:"dhwEventsActive"`
	ColdFlowLpm     []float64       `json:"coldFlowLpm,omitempty"`
}

// TimelinePayload is the chart-ready comparison of two system archetypes
// over one simulated day. Every series shares TimeMinutes and
// DemandHeatKw; bands are derived after the series are complete.
type TimelinePayload struct {
	SystemIDs    []string  `json:"systemIds"`
	StepMinutes  int       `json:"stepMinutes"`
	TimeMinutes  []int     `json:"timeMinutes"`
	DemandHeatKw []float64 `json:"demandHeatKw"`
	Series       []Series  `json:"series"`
	Bands        []Band    `json:"bands"`
	Legend       []string  `json:"legend,omitempty"`
	UsedProfile  bool      `json:"usedProfile"`
}
