package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Fees is the commission split of a single operation.
type Fees struct {
	// BrokerFee is the gross commission the agency captures before any internal split.
	BrokerFee decimal.Decimal
	// AdvisorFee is the primary advisor's net share after referral and shared deductions.
	AdvisorFee decimal.Decimal
}

// CalculateFees computes the gross and net commission of a deal.
//
// Referral and shared percentages are each taken from BrokerFee and deducted
// from the advisor share independently. A non-positive value yields zero fees.
// No rounding is applied.
func CalculateFees(value, advisorPct, brokerPct, referralPct, sharedPct decimal.Decimal) Fees {
	if !value.IsPositive() {
		return Fees{BrokerFee: decimal.Zero, AdvisorFee: decimal.Zero}
	}

	brokerFee := value.Mul(brokerPct).Div(hundred)
	advisorFee := brokerFee.Mul(advisorPct).Div(hundred)
	advisorFee = advisorFee.Sub(brokerFee.Mul(referralPct).Div(hundred))
	advisorFee = advisorFee.Sub(brokerFee.Mul(sharedPct).Div(hundred))

	return Fees{BrokerFee: brokerFee, AdvisorFee: advisorFee}
}

// OperationFees applies CalculateFees to an operation, treating unset percentages as zero.
func OperationFees(op entity.Operation) Fees {
	return CalculateFees(
		op.Value,
		entity.Pct(op.AdvisorPct),
		entity.Pct(op.BrokerPct),
		entity.Pct(op.ReferralPct),
		entity.Pct(op.SharedPct),
	)
}

// SecondaryAdvisorFee is the secondary advisor's share of a shared operation.
// It is zero for single-advisor operations.
func SecondaryAdvisorFee(op entity.Operation) decimal.Decimal {
	if !op.IsShared() {
		return decimal.Zero
	}
	return OperationFees(op).BrokerFee.Mul(entity.Pct(op.SecondaryAdvisorPct)).Div(hundred)
}

// AdvisorShare is what the given advisor earns from the operation.
// An advisor recorded as both primary and secondary earns the primary share.
func AdvisorShare(op entity.Operation, advisorID uuid.UUID) decimal.Decimal {
	switch {
	case op.AdvisorID == advisorID:
		return OperationFees(op).AdvisorFee
	case op.IsSecondary(advisorID):
		return SecondaryAdvisorFee(op)
	default:
		return decimal.Zero
	}
}

// TeamNetFee is the sum of every advisor's share of the operation.
func TeamNetFee(op entity.Operation) decimal.Decimal {
	return OperationFees(op).AdvisorFee.Add(SecondaryAdvisorFee(op))
}

// AdjustedBrokerFee is an advisor's contribution to the broker fee for ranking.
// Shared operations are halved so the same deal is not counted twice across two
// advisor rows. Type aggregation always uses the raw broker fee instead.
func AdjustedBrokerFee(op entity.Operation) decimal.Decimal {
	fee := OperationFees(op).BrokerFee
	if op.IsShared() {
		return fee.Div(two)
	}
	return fee
}

// WithDerivedFees returns a copy of op whose GrossFee and NetFee are recomputed.
func WithDerivedFees(op entity.Operation) entity.Operation {
	fees := OperationFees(op)
	op.GrossFee = fees.BrokerFee
	op.NetFee = fees.AdvisorFee
	return op
}

// Round2 rounds to two decimal places for display.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
