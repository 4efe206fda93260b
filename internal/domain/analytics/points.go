package analytics

import (
	"github.com/google/uuid"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// PointsSummary counts buyer-side and seller-side participation ("puntas").
type PointsSummary struct {
	BuyerSides  int
	SellerSides int
	Total       int
}

// Sides returns how many sides of the operation were represented: 0, 1 or 2.
func Sides(op entity.Operation) int {
	n := 0
	if op.BuyerSide {
		n++
	}
	if op.SellerSide {
		n++
	}
	return n
}

// PointsFor returns the points the advisor earns from the operation.
//
// Shared operations credit each of the two advisors with exactly one point,
// whatever the number of sides: the engagement is split per operation, not
// per side. A sole advisor, or one recorded as both primary and secondary,
// earns every side.
func PointsFor(op entity.Operation, advisorID uuid.UUID) int {
	if !op.Involves(advisorID) {
		return 0
	}
	if op.IsShared() {
		return 1
	}
	return Sides(op)
}

// CountPoints totals side participation over ops. With a nil advisor the total
// is team-wide; otherwise Total follows PointsFor while the side counts only
// include operations the advisor takes part in.
func CountPoints(ops []entity.Operation, advisorID *uuid.UUID) PointsSummary {
	var s PointsSummary
	for _, op := range ops {
		if advisorID != nil && !op.Involves(*advisorID) {
			continue
		}
		if op.BuyerSide {
			s.BuyerSides++
		}
		if op.SellerSide {
			s.SellerSides++
		}
		if advisorID != nil {
			s.Total += PointsFor(op, *advisorID)
		} else {
			s.Total += Sides(op)
		}
	}
	return s
}
