// Package domain defines the core types for the Heatpath survey engine.
package domain

// Supported survey contract revisions. Version 0 on the wire is read as 1
// (the field predates versioning); anything above ContractVersionMax is
// rejected so an old engine never half-interprets a newer contract.
const (
	ContractVersionMin = 1
	ContractVersionMax = 2
)

// OccupancySignature classifies the household's daily rhythm. Legacy
// aliases (steady_home, shift_worker) are folded into the canonical values
// during normalization and never appear past that boundary.
type OccupancySignature string

const (
	OccupancyProfessional OccupancySignature = "professional"
	OccupancySteady       OccupancySignature = "steady"
	OccupancyShift        OccupancySignature = "shift"
	OccupancyUnknown      OccupancySignature = "unknown"
)

// Survey is the raw surveyor submission. The wire contract is camelCase
// JSON; optional measurements are pointers so that absence survives
// decoding and can be reported as an assumption rather than a zero.
type Survey struct {
	ContractVersion int               `json:"contractVersion"`
	Property        *Property         `json:"property,omitempty"`
	Occupancy       *Occupancy        `json:"occupancy,omitempty"`
	Infrastructure  *Infrastructure   `json:"infrastructure,omitempty"`
	DHW             *DHW              `json:"dhw,omitempty"`
	Services        *Services         `json:"services,omitempty"`
	CurrentSystem   *CurrentSystem    `json:"currentSystem,omitempty"`
	Building        *Building         `json:"building,omitempty"`
	Lifestyle       *LifestyleProfile `json:"lifestyle,omitempty"`
}

// Property describes the dwelling itself.
type Property struct {
	Postcode          string   `json:"postcode,omitempty"`
	Bedrooms          int      `json:"bedrooms,omitempty"`
	Occupants         int      `json:"occupants,omitempty"`
	Bathrooms         int      `json:"bathrooms,omitempty"`
	RadiatorCount     int      `json:"radiatorCount,omitempty"`
	HasLoftConversion bool     `json:"hasLoftConversion,omitempty"`
	PeakHeatLossKw    *float64 `json:"peakHeatLossKw,omitempty"`
}

// Occupancy carries the household rhythm as reported by the surveyor.
type Occupancy struct {
	Signature string `json:"signature,omitempty"`
}

// Infrastructure holds the incoming mains measurements.
type Infrastructure struct {
	MainsStaticBar  *float64 `json:"mainsStaticBar,omitempty"`
	MainsDynamicBar *float64 `json:"mainsDynamicBar,omitempty"`
	DynamicFlowLpm  *float64 `json:"dynamicFlowLpm,omitempty"`
	StopcockMm      *int     `json:"stopcockMm,omitempty"`
	MainsMaterial   string   `json:"mainsMaterial,omitempty"`
}

// DHW describes hot-water usage as reported, independent of the
// lifestyle profile used for simulation.
type DHW struct {
	ShowersPerDay       *int `json:"showersPerDay,omitempty"`
	BathsPerDay         *int `json:"bathsPerDay,omitempty"`
	SimultaneousOutlets *int `json:"simultaneousOutlets,omitempty"`
}

// Services covers fuel and tariff availability at the property.
type Services struct {
	GasAvailable *bool    `json:"gasAvailable,omitempty"`
	Phases       *int     `json:"phases,omitempty"`
	SmartTariff  *bool    `json:"smartTariff,omitempty"`
	OffPeakHours *float64 `json:"offPeakHours,omitempty"`
}

// CurrentSystem describes the installed heating system, when one exists.
type CurrentSystem struct {
	Kind           string  `json:"kind,omitempty"`
	AgeYears       *int    `json:"ageYears,omitempty"`
	MagneticFilter *bool   `json:"magneticFilter,omitempty"`
	PipeworkMm     *int    `json:"pipeworkMm,omitempty"`
	Boiler         *Boiler `json:"boiler,omitempty"`
}

// Boiler identifies the installed boiler. GcNumber is the GC appliance
// registration number used for efficiency lookup when present.
type Boiler struct {
	GcNumber  *string  `json:"gcNumber,omitempty"`
	AgeYears  *int     `json:"ageYears,omitempty"`
	NominalKw *float64 `json:"nominalKw,omitempty"`
	ErpBand   *string  `json:"erpBand,omitempty"`
	Fuel      string   `json:"fuel,omitempty"`
}

// Building carries the fabric survey when one was completed.
type Building struct {
	FloorAreaM2    *float64 `json:"floorAreaM2,omitempty"`
	AgeBand        string   `json:"ageBand,omitempty"`
	WallInsulation *bool    `json:"wallInsulation,omitempty"`
	DoubleGlazing  *bool    `json:"doubleGlazing,omitempty"`
}

// LifestyleProfile enables the household-specific demand events fed to the
// timeline. When absent the simulation falls back to a default event set.
type LifestyleProfile struct {
	MorningPeakEnabled       bool `json:"morningPeakEnabled"`
	EveningPeakEnabled       bool `json:"eveningPeakEnabled"`
	HasBath                  bool `json:"hasBath"`
	HasDishwasher            bool `json:"hasDishwasher"`
	HasWashingMachine        bool `json:"hasWashingMachine"`
	TwoSimultaneousBathrooms bool `json:"twoSimultaneousBathrooms"`
}
