// Package error defines domain-specific errors for the brokerage dashboard.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidStatus is returned when the status filter is not a known status.
	ErrInvalidStatus = errors.New("status must be: all, open, closed or fallen")

	// ErrInvalidYear is returned when the year filter is not a valid year.
	ErrInvalidYear = errors.New("year must be a four digit year or all")

	// ErrInvalidMonth is returned when the month filter is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12 or all")

	// ErrInvalidOperationType is returned when the type filter is not a known operation type.
	ErrInvalidOperationType = errors.New("invalid operation type")

	// ErrInvalidSeriesField is returned when the series field is unknown.
	ErrInvalidSeriesField = errors.New("field must be: broker_fee, advisor_fee, value, count or points")

	// ErrInvalidSeriesMode is returned when the series mode is unknown.
	ErrInvalidSeriesMode = errors.New("mode must be: monthly, compare, cumulative or projection")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidStatus        DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidYear          DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidMonth         DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidOperationType DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidSeriesField   DashboardErrorCode = "DSH-010005"
	ErrCodeInvalidSeriesMode    DashboardErrorCode = "DSH-010006"

	// Authorization errors (02XXXX)
	ErrCodeDashboardForbidden DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
