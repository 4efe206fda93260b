package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// TypeSummary aggregates the operations of one type.
type TypeSummary struct {
	Count      int
	TotalFee   decimal.Decimal
	TotalValue decimal.Decimal
}

// Average returns TotalValue / Count, zero for an empty summary.
func (s TypeSummary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.TotalValue.Div(decimal.NewFromInt(int64(s.Count)))
}

// ByType groups the operations of the reporting year by operation type, summing
// the raw broker fee and the deal value. Operations without a canonical date in
// year are left out.
func ByType(ops []entity.Operation, year int) map[entity.OperationType]TypeSummary {
	out := make(map[entity.OperationType]TypeSummary)
	for _, op := range InYear(ops, year) {
		s := out[op.Type]
		s.Count++
		s.TotalFee = s.TotalFee.Add(OperationFees(op).BrokerFee)
		s.TotalValue = s.TotalValue.Add(op.Value)
		out[op.Type] = s
	}
	return out
}

// GroupAverageValue is the mean of the per-type average values over every type
// not in excluded. It is an average of averages, so high-volume low-value types
// weigh as much as any other type. Types with no operations are ignored.
func GroupAverageValue(byType map[entity.OperationType]TypeSummary, excluded map[entity.OperationType]bool) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	// Iterate in declaration order so the sum is reproducible bit for bit.
	for _, t := range entity.OperationTypes {
		s, ok := byType[t]
		if !ok || s.Count == 0 || excluded[t] {
			continue
		}
		sum = sum.Add(s.Average())
		n++
	}
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// Percentage returns part/total*100 rounded to two decimals, and zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// GroupSummary aggregates one coarse report group.
type GroupSummary struct {
	Group      entity.ReportGroup
	Count      int
	BrokerFee  decimal.Decimal
	Value      decimal.Decimal
	Percentage decimal.Decimal // Share of GroupReport.TotalBrokerFee
}

// GroupReport is the grouped summary of an operation set.
type GroupReport struct {
	Groups         []GroupSummary
	TotalBrokerFee decimal.Decimal
}

// SummaryByGroup aggregates ops into the six report groups, always returned in
// report order. Types without a group (subdivision, industrial warehouse,
// development lots) are left out of Groups but still counted in TotalBrokerFee,
// so group percentages may add up to less than 100.
func SummaryByGroup(ops []entity.Operation) GroupReport {
	byGroup := make(map[entity.ReportGroup]*GroupSummary, len(entity.ReportGroups))
	for _, g := range entity.ReportGroups {
		byGroup[g] = &GroupSummary{Group: g}
	}

	total := decimal.Zero
	for _, op := range ops {
		fee := OperationFees(op).BrokerFee
		total = total.Add(fee)

		g, ok := op.Type.ReportGroup()
		if !ok {
			continue
		}
		s := byGroup[g]
		s.Count++
		s.BrokerFee = s.BrokerFee.Add(fee)
		s.Value = s.Value.Add(op.Value)
	}

	report := GroupReport{
		Groups:         make([]GroupSummary, 0, len(entity.ReportGroups)),
		TotalBrokerFee: total,
	}
	for _, g := range entity.ReportGroups {
		s := *byGroup[g]
		s.Percentage = Percentage(s.BrokerFee, total)
		report.Groups = append(report.Groups, s)
	}
	return report
}

// Exclusivity is the split between exclusive and non-exclusive listings.
type Exclusivity struct {
	Exclusive       int
	NonExclusive    int
	ExclusivePct    decimal.Decimal
	NonExclusivePct decimal.Decimal
}

// ExclusivityRatio counts exclusive listings among non-rental operations that
// carry both a capture and a reservation date. Anything else is ignored.
func ExclusivityRatio(ops []entity.Operation) Exclusivity {
	var e Exclusivity
	for _, op := range ops {
		if op.Type.IsRental() || !hasDate(op.CaptureDate) || !hasDate(op.ReservationDate) {
			continue
		}
		if op.Exclusive {
			e.Exclusive++
		} else {
			e.NonExclusive++
		}
	}
	total := decimal.NewFromInt(int64(e.Exclusive + e.NonExclusive))
	e.ExclusivePct = Percentage(decimal.NewFromInt(int64(e.Exclusive)), total)
	e.NonExclusivePct = Percentage(decimal.NewFromInt(int64(e.NonExclusive)), total)
	return e
}

// AverageDaysToSell is the mean number of whole days between capture and
// reservation. Each operation's day count is rounded before averaging.
// Operations missing either date, of a rental or development type, or whose
// reservation precedes the capture are excluded, never counted as zero.
// The second return value is the number of operations averaged.
func AverageDaysToSell(ops []entity.Operation) (decimal.Decimal, int) {
	var sum int64
	n := 0
	for _, op := range ops {
		if op.Type.Traits().ExcludedFromSellTime {
			continue
		}
		if !hasDate(op.CaptureDate) || !hasDate(op.ReservationDate) {
			continue
		}
		days := math.Round(op.ReservationDate.Sub(*op.CaptureDate).Hours() / 24)
		if days < 0 {
			continue
		}
		sum += int64(days)
		n++
	}
	if n == 0 {
		return decimal.Zero, 0
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(n))), n
}

// SidePercentages holds the mean buyer-side and seller-side commission percentages.
type SidePercentages struct {
	BuyerAverage  decimal.Decimal
	BuyerSamples  int
	SellerAverage decimal.Decimal
	SellerSamples int
}

// AverageSidePercentages averages the side percentages over the operations that
// set them. An unset percentage is skipped; an explicit zero is averaged in.
func AverageSidePercentages(ops []entity.Operation) SidePercentages {
	var out SidePercentages
	buyer, seller := decimal.Zero, decimal.Zero
	for _, op := range ops {
		if op.BuyerSidePct.Valid {
			buyer = buyer.Add(op.BuyerSidePct.Decimal)
			out.BuyerSamples++
		}
		if op.SellerSidePct.Valid {
			seller = seller.Add(op.SellerSidePct.Decimal)
			out.SellerSamples++
		}
	}
	if out.BuyerSamples > 0 {
		out.BuyerAverage = buyer.Div(decimal.NewFromInt(int64(out.BuyerSamples)))
	}
	if out.SellerSamples > 0 {
		out.SellerAverage = seller.Div(decimal.NewFromInt(int64(out.SellerSamples)))
	}
	return out
}

func hasDate(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
