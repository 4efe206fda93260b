// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// OperationModel represents the operations table in the database.
type OperationModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID uuid.UUID `gorm:"type:uuid;index;not null"`

	CaptureDate     *time.Time
	ReservationDate *time.Time
	ClosingDate     *time.Time

	Value  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type   string          `gorm:"type:varchar(50);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'open'"`

	BuyerSidePct        decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	SellerSidePct       decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	AdvisorPct          decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	BrokerPct           decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	ReferralPct         decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	SharedPct           decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	SecondaryAdvisorPct decimal.NullDecimal `gorm:"type:decimal(5,2)"`

	BuyerSide  bool `gorm:"not null;default:false"`
	SellerSide bool `gorm:"not null;default:false"`
	Exclusive  bool `gorm:"not null;default:false"`

	AdvisorID          uuid.UUID      `gorm:"type:uuid;index;not null"`
	SecondaryAdvisorID *uuid.UUID     `gorm:"type:uuid;index"`
	ReferralPartyIDs   pq.StringArray `gorm:"type:text[]"`

	Address   string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the OperationModel.
func (OperationModel) TableName() string {
	return "operations"
}

// ToEntity converts an OperationModel to a domain Operation entity.
// Derived fees are not stored and are left for the caller to compute.
func (m *OperationModel) ToEntity() entity.Operation {
	var referrals []string
	if len(m.ReferralPartyIDs) > 0 {
		referrals = make([]string, len(m.ReferralPartyIDs))
		copy(referrals, m.ReferralPartyIDs)
	}

	return entity.Operation{
		ID:                  m.ID,
		TeamID:              m.TeamID,
		CaptureDate:         m.CaptureDate,
		ReservationDate:     m.ReservationDate,
		ClosingDate:         m.ClosingDate,
		Value:               m.Value,
		Type:                entity.OperationType(m.Type),
		Status:              entity.OperationStatus(m.Status),
		BuyerSidePct:        m.BuyerSidePct,
		SellerSidePct:       m.SellerSidePct,
		AdvisorPct:          m.AdvisorPct,
		BrokerPct:           m.BrokerPct,
		ReferralPct:         m.ReferralPct,
		SharedPct:           m.SharedPct,
		SecondaryAdvisorPct: m.SecondaryAdvisorPct,
		BuyerSide:           m.BuyerSide,
		SellerSide:          m.SellerSide,
		Exclusive:           m.Exclusive,
		AdvisorID:           m.AdvisorID,
		SecondaryAdvisorID:  m.SecondaryAdvisorID,
		ReferralPartyIDs:    referrals,
		Address:             m.Address,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// OperationFromEntity creates an OperationModel from a domain Operation entity.
func OperationFromEntity(op entity.Operation) *OperationModel {
	return &OperationModel{
		ID:                  op.ID,
		TeamID:              op.TeamID,
		CaptureDate:         op.CaptureDate,
		ReservationDate:     op.ReservationDate,
		ClosingDate:         op.ClosingDate,
		Value:               op.Value,
		Type:                string(op.Type),
		Status:              string(op.Status),
		BuyerSidePct:        op.BuyerSidePct,
		SellerSidePct:       op.SellerSidePct,
		AdvisorPct:          op.AdvisorPct,
		BrokerPct:           op.BrokerPct,
		ReferralPct:         op.ReferralPct,
		SharedPct:           op.SharedPct,
		SecondaryAdvisorPct: op.SecondaryAdvisorPct,
		BuyerSide:           op.BuyerSide,
		SellerSide:          op.SellerSide,
		Exclusive:           op.Exclusive,
		AdvisorID:           op.AdvisorID,
		SecondaryAdvisorID:  op.SecondaryAdvisorID,
		ReferralPartyIDs:    pq.StringArray(op.ReferralPartyIDs),
		Address:             op.Address,
		CreatedAt:           op.CreatedAt,
		UpdatedAt:           op.UpdatedAt,
	}
}
