package domain

import "fmt"

// EngineError is the unified error type for the engine.
// Each error has a numeric code and human-readable message.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error %d: %s", e.Code, e.Message)
}

// NewEngineError creates a new EngineError.
func NewEngineError(code int, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg}
}

// WrapEngineError creates an EngineError that includes a cause.
func WrapEngineError(code int, msg string, cause error) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf("%s: %v", msg, cause)}
}

// Errors exist only at contract boundaries. A survey that is merely
// incomplete or physically implausible never produces an error: missing
// optional inputs become assumptions and inconsistent measurements become
// diagnostic flags on the result.

// ---- Survey contract errors (-32200 to -32219) ----

var (
	ErrSurveyNil       = &EngineError{Code: -32200, Message: "survey must not be nil"}
	ErrContractVersion = &EngineError{Code: -32201, Message: "unsupported survey contract version"}
	ErrSurveyDecode    = &EngineError{Code: -32202, Message: "survey body is not valid JSON"}
)

// ---- Configuration errors (-32220 to -32239) ----

var (
	ErrConfigInvalid = &EngineError{Code: -32220, Message: "invalid configuration"}
	ErrTablesInvalid = &EngineError{Code: -32221, Message: "invalid calibration tables"}
)

// ---- Store errors (-32240 to -32259) ----

var (
	ErrStoreInit          = &EngineError{Code: -32240, Message: "failed to initialize store"}
	ErrStoreQuery         = &EngineError{Code: -32241, Message: "store query failed"}
	ErrStoreWrite         = &EngineError{Code: -32242, Message: "store write failed"}
	ErrAssessmentNotFound = &EngineError{Code: -32243, Message: "assessment not found"}
	ErrSchemaMigration    = &EngineError{Code: -32244, Message: "schema migration failed"}
)

// ---- Publisher errors (-32260 to -32279) ----

var (
	ErrPublisherDisabled = &EngineError{Code: -32260, Message: "publisher is disabled"}
	ErrPublisherStopped  = &EngineError{Code: -32261, Message: "publisher has been stopped"}
)
