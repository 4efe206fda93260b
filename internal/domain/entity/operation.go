// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationStatus represents the lifecycle state of an operation.
type OperationStatus string

const (
	OperationStatusOpen   OperationStatus = "open"
	OperationStatusClosed OperationStatus = "closed"
	// OperationStatusFallen is terminal.
	OperationStatusFallen OperationStatus = "fallen"
)

// Valid reports whether s is a known status.
func (s OperationStatus) Valid() bool {
	switch s {
	case OperationStatusOpen, OperationStatusClosed, OperationStatusFallen:
		return true
	}
	return false
}

// Operation represents a real-estate transaction or reservation.
type Operation struct {
	ID     uuid.UUID
	TeamID uuid.UUID

	CaptureDate     *time.Time
	ReservationDate *time.Time
	ClosingDate     *time.Time

	Value  decimal.Decimal
	Type   OperationType
	Status OperationStatus

	// Percentages are in [0, 100]. An invalid NullDecimal means the field was never set.
	BuyerSidePct        decimal.NullDecimal
	SellerSidePct       decimal.NullDecimal
	AdvisorPct          decimal.NullDecimal
	BrokerPct           decimal.NullDecimal
	ReferralPct         decimal.NullDecimal
	SharedPct           decimal.NullDecimal
	SecondaryAdvisorPct decimal.NullDecimal

	BuyerSide  bool
	SellerSide bool
	Exclusive  bool

	// GrossFee and NetFee are derived from Value and the percentages.
	GrossFee decimal.Decimal
	NetFee   decimal.Decimal

	AdvisorID          uuid.UUID
	SecondaryAdvisorID *uuid.UUID
	ReferralPartyIDs   []string

	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanonicalDate returns the closing date, falling back to the reservation date.
// The second return value is false when the operation has neither.
func (o Operation) CanonicalDate() (time.Time, bool) {
	if o.ClosingDate != nil && !o.ClosingDate.IsZero() {
		return *o.ClosingDate, true
	}
	if o.ReservationDate != nil && !o.ReservationDate.IsZero() {
		return *o.ReservationDate, true
	}
	return time.Time{}, false
}

// IsShared reports whether a second, distinct advisor takes part in the operation.
func (o Operation) IsShared() bool {
	return o.SecondaryAdvisorID != nil && *o.SecondaryAdvisorID != uuid.Nil && *o.SecondaryAdvisorID != o.AdvisorID
}

// Involves reports whether the advisor is the primary or the secondary advisor.
func (o Operation) Involves(advisorID uuid.UUID) bool {
	if o.AdvisorID == advisorID {
		return true
	}
	return o.SecondaryAdvisorID != nil && *o.SecondaryAdvisorID == advisorID
}

// IsSecondary reports whether the advisor is recorded as the secondary advisor.
func (o Operation) IsSecondary(advisorID uuid.UUID) bool {
	return o.SecondaryAdvisorID != nil && *o.SecondaryAdvisorID == advisorID
}

// Pct returns the percentage value, treating NULL as zero.
func Pct(p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Decimal
}
