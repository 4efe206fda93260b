// Package error defines domain-specific errors for the brokerage dashboard.
package error

import "errors"

// Analytics errors. These signal a caller defect, never a data-quality problem.
var (
	// ErrMissingUserContext is returned when a report is requested without a user.
	ErrMissingUserContext = errors.New("user context is required")

	// ErrInvalidReportingYear is returned when the reporting year is not positive.
	ErrInvalidReportingYear = errors.New("reporting year must be positive")
)

// AnalyticsErrorCode defines error codes for analytics contract violations.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Contract errors (01XXXX)
	ErrCodeMissingUserContext   AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidReportingYear AnalyticsErrorCode = "ANL-010002"
)

// AnalyticsError represents a contract violation detected by the analytics engine.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
