package domain

// AssessmentRecord is one stored engine run. The full survey and output
// bodies are kept verbatim for retrieval; list endpoints expose only
// the summary columns.
type AssessmentRecord struct {
	ID              string `json:"id"`
	CreatedAtUnix   int64  `json:"createdAtUnix"`
	ContractVersion int    `json:"contractVersion"`
	Signature       string `json:"signature"`
	Recommendation  string `json:"recommendation"`
	Confidence      string `json:"confidence"`
	SurveyJSON      string `json:"-"`
	OutputJSON      string `json:"-"`
}
