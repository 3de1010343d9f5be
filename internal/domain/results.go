package domain

// Hardness is the water hardness category derived from the postcode.
type Hardness string

const (
	HardnessSoft     Hardness = "soft"
	HardnessModerate Hardness = "moderate"
	HardnessHard     Hardness = "hard"
	HardnessVeryHard Hardness = "very_hard"
)

// Severity grades flags and assumptions.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
	SeverityFail Severity = "fail"
)

// Flag is a diagnostic raised against the survey. A fail flag rejects an
// option; it never aborts the run.
type Flag struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail,omitempty"`
}

// Assumption records a default substituted for a missing input.
type Assumption struct {
	FieldPath string   `json:"fieldPath"`
	Value     string   `json:"value"`
	Severity  Severity `json:"severity"`
	Note      string   `json:"note,omitempty"`
}

// VolumeBasis names which fallback produced the system volume estimate.
const (
	VolumeFromRadiators = "radiators"
	VolumeFromHeatLoss  = "heat_loss"
)

// NormalizedFacts is the single canonical view of the survey that every
// calculation module reads. It is computed once and passed by value.
type NormalizedFacts struct {
	Hardness        Hardness
	SystemVolumeL   float64
	VolumeBasis     string
	VentedFeasible  bool
	TenYearDecayPct float64
	Signature       OccupancySignature
	PeakHeatLossKw  float64
	HeatLossAssumed bool
	Bedrooms        int
	Occupants       int
	Bathrooms       int
	Assumptions     []Assumption
}

// HydraulicSafetyResult reports whether the incoming main can support
// instantaneous and unvented options. Substituted measurements are
// recorded as assumptions so the output can surface them.
type HydraulicSafetyResult struct {
	StaticBar      float64
	DynamicBar     float64
	DynamicFlowLpm float64
	FlowAssumed    bool
	CombiOK        bool
	UnventedOK     bool
	Inconsistent   bool
	Flags          []Flag
	Notes          []string
	Assumptions    []Assumption
}

// CombiStressResult scores simultaneous hot-water demand pressure on an
// instantaneous-only system.
type CombiStressResult struct {
	StressScore        float64
	SimultaneousLikely bool
	Notes              []string
}

// CylinderResult sizes a conventional and a stratified smart store.
type CylinderResult struct {
	RecommendedStoreL float64
	SmartStoreL       float64
	ReheatKwh         float64
	Notes             []string
}

// SludgeScaleResult weighs circuit sludge against limescale as the
// dominant degradation mechanism.
type SludgeScaleResult struct {
	ScalePenaltyPct  float64
	SludgePenaltyPct float64
	DominantRisk     string
	Flags            []Flag
	Notes            []string
}

// OptimizationResult recommends flow temperature and controls changes for
// the surveyed emitters.
type OptimizationResult struct {
	FlowTempC           int
	EstSavingPct        float64
	WeatherCompensation bool
	Notes               []string
}

// SedbukResult is the nominal efficiency lookup for the installed boiler.
type SedbukResult struct {
	NominalEfficiencyPct float64
	Band                 string
	Source               string // erp_band, gc_number or placeholder
	Notes                []string
}

// SizingResult compares required output against the installed boiler.
type SizingResult struct {
	RequiredKw     float64
	NominalKw      float64
	OversizeFactor float64
	CyclingRisk    bool
	Notes          []string
}

// FabricResult estimates envelope heat loss from the building survey.
type FabricResult struct {
	EstimatedHeatLossKw float64
	DeclaredHeatLossKw  float64
	MismatchPct         float64
	Notes               []string
}

// LegacyHydraulicsResult assesses the existing distribution pipework.
type LegacyHydraulicsResult struct {
	PipeworkMm     int
	Microbore      bool
	FlowRestricted bool
	Flags          []Flag
	Notes          []string
}

// GridFlexResult estimates load-shifting headroom under a smart tariff.
type GridFlexResult struct {
	Flexible        bool
	ShiftableKwhDay float64
	FlexWindowHours float64
	Notes           []string
}

// HourlyPoint is one hour of the simulated day.
type HourlyPoint struct {
	Hour          int
	DemandKw      float64
	DhwLikelihood float64
}

// LifestyleResult is the simulated 24-hour demand rhythm for the
// household plus the archetype the rhythm favours.
type LifestyleResult struct {
	Signature         OccupancySignature
	Hourly            []HourlyPoint
	PeakDemandKw      float64
	RecommendedSystem string
	Notes             []string
}

// EfficiencySummary captures the boiler efficiency model inputs and the
// headline current-efficiency figure before load effects.
type EfficiencySummary struct {
	NominalPct  float64
	AgeYears    int
	AgeDecayPct float64
	FullLoadPct float64
	Source      string
	Notes       []string
}

// AggregateResult is everything the pipeline produced for one survey.
// Conditional module results are nil when their input sub-object was
// absent; nil means skipped, not zero.
type AggregateResult struct {
	Facts        NormalizedFacts
	Hydraulics   HydraulicSafetyResult
	CombiStress  CombiStressResult
	Cylinder     CylinderResult
	SludgeScale  SludgeScaleResult
	Optimization OptimizationResult
	RedFlags     []Flag
	Lifestyle    LifestyleResult
	Sedbuk       *SedbukResult
	Sizing       *SizingResult
	Fabric       *FabricResult
	Legacy       *LegacyHydraulicsResult
	GridFlex     *GridFlexResult
	Efficiency   EfficiencySummary
	Timeline     TimelinePayload
}
