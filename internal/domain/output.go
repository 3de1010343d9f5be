package domain

// Viability is the eligibility status of one system archetype.
type Viability string

const (
	ViabilityViable   Viability = "viable"
	ViabilityCaution  Viability = "caution"
	ViabilityRejected Viability = "rejected"
)

// OptionEligibility is the verdict for one archetype with the reasons
// that produced it.
type OptionEligibility struct {
	OptionID string    `json:"optionId"`
	Status   Viability `json:"status"`
	Reasons  []string  `json:"reasons,omitempty"`
}

// Recommendation names the primary option and why it won.
type Recommendation struct {
	Primary   string   `json:"primary"`
	Rationale []string `json:"rationale,omitempty"`
}

// EvidenceSource records how a value entered the assessment.
type EvidenceSource string

const (
	EvidenceManual      EvidenceSource = "manual"
	EvidenceAssumed     EvidenceSource = "assumed"
	EvidencePlaceholder EvidenceSource = "placeholder"
	EvidenceDerived     EvidenceSource = "derived"
)

// ConfidenceLevel grades evidence items and the overall assessment.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// EvidenceItem ties a decisive input value to the options it affects.
type EvidenceItem struct {
	ID               string          `json:"id"`
	FieldPath        string          `json:"fieldPath"`
	Label            string          `json:"label"`
	Value            string          `json:"value"`
	Source           EvidenceSource  `json:"source"`
	Confidence       ConfidenceLevel `json:"confidence"`
	AffectsOptionIDs []string        `json:"affectsOptionIds,omitempty"`
}

// Confidence is the overall assessment confidence with its reasons.
type Confidence struct {
	Level   ConfidenceLevel `json:"level"`
	Reasons []string        `json:"reasons,omitempty"`
}

// Meta carries assessment-level context. It holds no timestamps: the
// engine must produce byte-identical output for identical input.
type Meta struct {
	ContractVersion int          `json:"contractVersion"`
	Confidence      Confidence   `json:"confidence"`
	Assumptions     []Assumption `json:"assumptions,omitempty"`
}

// Visual type discriminators.
const VisualTimeline24h = "timeline_24h"

// Visual is a tagged chart payload. Consumers ignore types they do not
// recognize.
type Visual struct {
	Type     string           `json:"type"`
	Timeline *TimelinePayload `json:"timeline,omitempty"`
}

// EngineOutput is the complete assessment returned to callers.
type EngineOutput struct {
	Eligibility    []OptionEligibility `json:"eligibility"`
	RedFlags       []Flag              `json:"redFlags"`
	Recommendation Recommendation      `json:"recommendation"`
	Explainers     []string            `json:"explainers,omitempty"`
	Evidence       []EvidenceItem      `json:"evidence"`
	Meta           Meta                `json:"meta"`
	Visuals        []Visual            `json:"visuals"`
}
