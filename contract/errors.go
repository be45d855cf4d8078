package contract

import (
	"fmt"
	"strings"
)

// ValidationCode classifies parameter validation failures. Validation
// failures are never retried and never reach the network.
type ValidationCode int

const (
	// UnknownFunction means the function name is outside the closed set.
	UnknownFunction ValidationCode = iota
	// MissingParameter means a required field is absent from the bag.
	MissingParameter
	// InvalidParameterType means a field is present but has the wrong
	// shape or an unacceptable value.
	InvalidParameterType
)

// String returns the code name.
func (c ValidationCode) String() string {
	switch c {
	case UnknownFunction:
		return "UnknownFunction"
	case MissingParameter:
		return "MissingParameter"
	case InvalidParameterType:
		return "InvalidParameterType"
	default:
		return fmt.Sprintf("ValidationCode(%d)", int(c))
	}
}

// ValidationError reports a parameter bag that cannot be encoded for the
// requested function. It names the specific field so callers can surface
// it to the user verbatim.
type ValidationError struct {
	Code     ValidationCode
	Function string
	Field    string
	Detail   string
}

// Error implements error.
func (e *ValidationError) Error() string {
	switch e.Code {
	case UnknownFunction:
		return fmt.Sprintf("contract: unknown function %q", e.Function)
	case MissingParameter:
		return fmt.Sprintf("contract: %s: missing parameter %q", e.Function, e.Field)
	default:
		return fmt.Sprintf("contract: %s: invalid parameter %q: %s", e.Function, e.Field, e.Detail)
	}
}

// FailureClass classifies pipeline and fallback failures.
type FailureClass string

const (
	// FailureNone marks a result with no failure.
	FailureNone FailureClass = ""
	// ConstructionFailed covers envelope assembly failures. Terminal.
	ConstructionFailed FailureClass = "construction_failed"
	// FreezeFailed covers signer-binding failures. Retryable through the
	// direct execution path.
	FreezeFailed FailureClass = "freeze_failed"
	// SubmissionFailed covers transmission failures. Retryable through
	// the direct execution path.
	SubmissionFailed FailureClass = "submission_failed"
	// DirectExecutionUnavailable means the connector exposes no low-level
	// send primitive for the fallback path. Terminal.
	DirectExecutionUnavailable FailureClass = "direct_execution_unavailable"
	// DirectExecutionFailed means the fallback submission itself failed.
	// Terminal; there is no further degradation.
	DirectExecutionFailed FailureClass = "direct_execution_failed"
)

// Retryable reports whether a failure of this class triggers the one
// permitted fallback attempt.
func (c FailureClass) Retryable() bool {
	return c == FreezeFailed || c == SubmissionFailed
}

// StageError reports a pipeline stage failure with its classification.
type StageError struct {
	Stage Stage
	Class FailureClass
	Err   error
}

// Error implements error.
func (e *StageError) Error() string {
	return fmt.Sprintf("contract: %s stage failed (%s): %v", e.Stage, e.Class, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StageError) Unwrap() error { return e.Err }

// recoverableSubmitTexts lists substrings of underlying network errors
// known to indicate a payload that was malformed at construction and is
// recoverable through the direct path. Matching on error text is a
// stopgap until the network boundary exposes structured error codes.
var recoverableSubmitTexts = []string{
	"transaction body payload missing",
}

// isRecoverableSubmitError reports whether the submit error text matches a
// known recoverable network error.
func isRecoverableSubmitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, t := range recoverableSubmitTexts {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
