// Package analytics is the commission and operations-analytics engine.
//
// Every function is a pure transformation over an operation snapshot: inputs
// are never mutated and no state is kept between calls, so everything here is
// safe for concurrent use. Data-quality anomalies (missing dates, missing
// percentages, empty sets) never fail; the affected operations are excluded
// from the aggregate that needs the missing data, as documented per function.
package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

// FilterAll is the wire value meaning "no filter" for any criterion.
const FilterAll = "all"

// Filter selects operations by status, year, month and type. A nil field does not filter.
type Filter struct {
	Status *entity.OperationStatus
	Year   *int
	// Month is 1-based.
	Month *int
	Type  *entity.OperationType
}

// ParseFilter builds a Filter from its wire values. Empty strings and "all" mean no filter.
func ParseFilter(status, year, month, opType string) (Filter, error) {
	var f Filter

	if s := normalize(status); s != "" {
		st := entity.OperationStatus(s)
		if !st.Valid() {
			return Filter{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidStatus,
				"invalid status filter",
				domainerror.ErrInvalidStatus,
			)
		}
		f.Status = &st
	}

	if s := normalize(year); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1000 || y > 9999 {
			return Filter{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidYear,
				"invalid year filter",
				domainerror.ErrInvalidYear,
			)
		}
		f.Year = &y
	}

	if s := normalize(month); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return Filter{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidMonth,
				"invalid month filter",
				domainerror.ErrInvalidMonth,
			)
		}
		f.Month = &m
	}

	if s := normalize(opType); s != "" {
		t := entity.OperationType(s)
		if !t.Valid() {
			return Filter{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidOperationType,
				"invalid operation type filter",
				domainerror.ErrInvalidOperationType,
			)
		}
		f.Type = &t
	}

	return f, nil
}

func normalize(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == FilterAll {
		return ""
	}
	return v
}

// Matches reports whether the operation satisfies every criterion of the filter.
// An operation without a canonical date never matches a year or month criterion.
func (f Filter) Matches(op entity.Operation) bool {
	if f.Status != nil && op.Status != *f.Status {
		return false
	}
	if f.Type != nil && op.Type != *f.Type {
		return false
	}
	if f.Year != nil || f.Month != nil {
		date, ok := op.CanonicalDate()
		if !ok {
			return false
		}
		if f.Year != nil && date.Year() != *f.Year {
			return false
		}
		if f.Month != nil && int(date.Month()) != *f.Month {
			return false
		}
	}
	return true
}

// FilterOperations returns the operations matching f, in their original order.
// The input slice is never modified.
func FilterOperations(ops []entity.Operation, f Filter) []entity.Operation {
	out := make([]entity.Operation, 0, len(ops))
	for _, op := range ops {
		if f.Matches(op) {
			out = append(out, op)
		}
	}
	return out
}

// InYear is shorthand for filtering by canonical-date year only.
func InYear(ops []entity.Operation, year int) []entity.Operation {
	return FilterOperations(ops, Filter{Year: &year})
}

// WithStatus is shorthand for filtering by status only.
func WithStatus(ops []entity.Operation, status entity.OperationStatus) []entity.Operation {
	return FilterOperations(ops, Filter{Status: &status})
}

// DatedBefore keeps the operations whose canonical date falls strictly before
// cutoff. Undated operations are dropped.
func DatedBefore(ops []entity.Operation, cutoff time.Time) []entity.Operation {
	out := make([]entity.Operation, 0, len(ops))
	for _, op := range ops {
		if d, ok := op.CanonicalDate(); ok && d.Before(cutoff) {
			out = append(out, op)
		}
	}
	return out
}

// ForAdvisor returns the operations where the advisor is primary or secondary.
func ForAdvisor(ops []entity.Operation, advisorID uuid.UUID) []entity.Operation {
	out := make([]entity.Operation, 0, len(ops))
	for _, op := range ops {
		if op.Involves(advisorID) {
			out = append(out, op)
		}
	}
	return out
}

// Active drops fallen operations, which never count toward commission figures.
func Active(ops []entity.Operation) []entity.Operation {
	out := make([]entity.Operation, 0, len(ops))
	for _, op := range ops {
		if op.Status != entity.OperationStatusFallen {
			out = append(out, op)
		}
	}
	return out
}
