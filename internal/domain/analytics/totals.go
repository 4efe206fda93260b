package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
)

// Totals is the consolidated set of derived numbers behind the dashboard.
type Totals struct {
	Year int

	GrossTotal  decimal.Decimal
	GrossOpen   decimal.Decimal
	GrossClosed decimal.Decimal
	NetTotal    decimal.Decimal
	NetOpen     decimal.Decimal
	NetClosed   decimal.Decimal

	ClosedValue      decimal.Decimal
	AverageDealValue decimal.Decimal
	ClosedCount      int
	OpenCount        int
	FallenCount      int
	FallenValue      decimal.Decimal

	Points PointsSummary

	Objective         decimal.Decimal
	ObjectiveProgress decimal.Decimal

	// MonthlyShare maps a year to its months' share of that year's gross.
	MonthlyShare map[int]MonthlySeries
}

// ComputeTotals derives the dashboard totals for the operations dated in year.
//
// Advisors only see operations they take part in: their net is their own
// share and their points follow the shared-operation rule. Team leaders see
// every operation, the net of all advisors and every represented side.
// Fallen operations are excluded from every commission figure and reported
// through FallenCount and FallenValue only. The monthly share series cover
// year and year-1.
func ComputeTotals(ops []entity.Operation, user *entity.UserContext, year int) (*Totals, error) {
	if user == nil {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeMissingUserContext,
			"totals require a user context",
			domainerror.ErrMissingUserContext,
		)
	}
	if year <= 0 {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidReportingYear,
			"totals require a reporting year",
			domainerror.ErrInvalidReportingYear,
		)
	}

	var (
		scoped        = ops
		net           = TeamNetFee
		pointsAdvisor *uuid.UUID
	)
	if !user.IsTeamLeader() {
		advisorID := user.UserID
		scoped = ForAdvisor(ops, advisorID)
		net = func(op entity.Operation) decimal.Decimal { return AdvisorShare(op, advisorID) }
		pointsAdvisor = &advisorID
	}

	t := &Totals{
		Year:             year,
		GrossTotal:       decimal.Zero,
		GrossOpen:        decimal.Zero,
		GrossClosed:      decimal.Zero,
		NetTotal:         decimal.Zero,
		NetOpen:          decimal.Zero,
		NetClosed:        decimal.Zero,
		ClosedValue:      decimal.Zero,
		AverageDealValue: decimal.Zero,
		FallenValue:      decimal.Zero,
		Objective:        user.Objective,
		MonthlyShare:     make(map[int]MonthlySeries, 2),
	}

	yearOps := InYear(scoped, year)
	var active []entity.Operation
	for _, op := range yearOps {
		gross := OperationFees(op).BrokerFee
		switch op.Status {
		case entity.OperationStatusOpen:
			t.OpenCount++
			t.GrossOpen = t.GrossOpen.Add(gross)
			t.NetOpen = t.NetOpen.Add(net(op))
		case entity.OperationStatusClosed:
			t.ClosedCount++
			t.GrossClosed = t.GrossClosed.Add(gross)
			t.NetClosed = t.NetClosed.Add(net(op))
			t.ClosedValue = t.ClosedValue.Add(op.Value)
		case entity.OperationStatusFallen:
			t.FallenCount++
			t.FallenValue = t.FallenValue.Add(op.Value)
			continue
		default:
			continue
		}
		active = append(active, op)
	}

	t.GrossTotal = t.GrossOpen.Add(t.GrossClosed)
	t.NetTotal = t.NetOpen.Add(t.NetClosed)
	if t.ClosedCount > 0 {
		t.AverageDealValue = t.ClosedValue.Div(decimal.NewFromInt(int64(t.ClosedCount)))
	}
	t.Points = CountPoints(active, pointsAdvisor)
	t.ObjectiveProgress = Percentage(t.GrossClosed, user.Objective)

	nonFallen := Active(scoped)
	t.MonthlyShare[year] = MonthlyShare(nonFallen, year)
	t.MonthlyShare[year-1] = MonthlyShare(nonFallen, year-1)

	return t, nil
}
