package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

// Months is the number of buckets of every monthly series.
const Months = 12

// MonthlySeries holds one value per calendar month, January first.
type MonthlySeries [Months]decimal.Decimal

// Field extracts the value an operation contributes to a bucket.
type Field func(op entity.Operation) decimal.Decimal

// FieldName identifies a Field on the wire.
type FieldName string

const (
	FieldNameBrokerFee  FieldName = "broker_fee"
	FieldNameAdvisorFee FieldName = "advisor_fee"
	FieldNameValue      FieldName = "value"
	FieldNameCount      FieldName = "count"
	FieldNamePoints     FieldName = "points"
)

var (
	// FieldBrokerFee buckets the gross commission.
	FieldBrokerFee Field = func(op entity.Operation) decimal.Decimal { return OperationFees(op).BrokerFee }
	// FieldAdvisorFee buckets every advisor's net share.
	FieldAdvisorFee Field = TeamNetFee
	// FieldValue buckets the deal value.
	FieldValue Field = func(op entity.Operation) decimal.Decimal { return op.Value }
	// FieldCount counts operations.
	FieldCount Field = func(entity.Operation) decimal.Decimal { return decimal.NewFromInt(1) }
	// FieldPoints buckets the represented sides.
	FieldPoints Field = func(op entity.Operation) decimal.Decimal { return decimal.NewFromInt(int64(Sides(op))) }
)

var fieldsByName = map[FieldName]Field{
	FieldNameBrokerFee:  FieldBrokerFee,
	FieldNameAdvisorFee: FieldAdvisorFee,
	FieldNameValue:      FieldValue,
	FieldNameCount:      FieldCount,
	FieldNamePoints:     FieldPoints,
}

// LookupField returns the Field for a wire name.
func LookupField(name FieldName) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// LookupFieldFor returns the Field for a wire name as seen by one advisor: the
// advisor fee is the advisor's own share and points follow the
// shared-operation rule.
func LookupFieldFor(name FieldName, advisorID uuid.UUID) (Field, bool) {
	switch name {
	case FieldNameAdvisorFee:
		return func(op entity.Operation) decimal.Decimal { return AdvisorShare(op, advisorID) }, true
	case FieldNamePoints:
		return func(op entity.Operation) decimal.Decimal { return decimal.NewFromInt(int64(PointsFor(op, advisorID))) }, true
	}
	return LookupField(name)
}

// NewMonthlySeries returns a series with every month set to zero.
func NewMonthlySeries() MonthlySeries {
	var s MonthlySeries
	for i := range s {
		s[i] = decimal.Zero
	}
	return s
}

// Total sums the twelve months.
func (s MonthlySeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(v)
	}
	return total
}

// BucketByMonth sums field over the operations whose canonical date falls in
// year, one bucket per month. Operations without a canonical date are skipped.
func BucketByMonth(ops []entity.Operation, year int, field Field) MonthlySeries {
	s := NewMonthlySeries()
	for _, op := range ops {
		date, ok := op.CanonicalDate()
		if !ok || date.Year() != year {
			continue
		}
		m := int(date.Month()) - 1
		s[m] = s[m].Add(field(op))
	}
	return s
}

// MonthComparison pairs the same month of two years.
type MonthComparison struct {
	Month    int // 1-12
	Current  decimal.Decimal
	Previous decimal.Decimal
}

// CompareYears buckets field for two years side by side. The result always has
// twelve entries; months without operations are zero.
func CompareYears(ops []entity.Operation, current, previous int, field Field) []MonthComparison {
	cur := BucketByMonth(ops, current, field)
	prev := BucketByMonth(ops, previous, field)
	out := make([]MonthComparison, Months)
	for i := range out {
		out[i] = MonthComparison{Month: i + 1, Current: cur[i], Previous: prev[i]}
	}
	return out
}

// Cumulative returns the running sum of s. Each step is rounded to two
// decimals before the next month is added, so the displayed months add up
// exactly the way they read on screen.
func Cumulative(s MonthlySeries) MonthlySeries {
	var out MonthlySeries
	running := decimal.Zero
	for i, v := range s {
		running = Round2(running.Add(v))
		out[i] = running
	}
	return out
}

// ProjectionPoint is one month of the projection series.
type ProjectionPoint struct {
	Month int // 1-12
	// Actual is the cumulative closed total; set only for months already elapsed.
	Actual *decimal.Decimal
	// Projected is set for the current month onwards.
	Projected *decimal.Decimal
}

// Projection is a naive year-end projection. Elapsed months carry the
// cumulative closed total. From the current month on, every month carries the
// same figure: the closed total through the last fully elapsed month plus the
// field summed over every open operation dated in year or not dated at all.
// It is a placeholder, not a forecast model.
func Projection(ops []entity.Operation, year int, now time.Time, field Field) []ProjectionPoint {
	closed := Cumulative(BucketByMonth(WithStatus(ops, entity.OperationStatusClosed), year, field))

	// elapsed is the number of fully elapsed months of year at now.
	var elapsed int
	switch {
	case year < now.Year():
		elapsed = Months
	case year > now.Year():
		elapsed = 0
	default:
		elapsed = int(now.Month()) - 1
	}

	base := decimal.Zero
	if elapsed > 0 {
		base = closed[elapsed-1]
	}
	pending := decimal.Zero
	for _, op := range WithStatus(ops, entity.OperationStatusOpen) {
		if date, ok := op.CanonicalDate(); ok && date.Year() != year {
			continue
		}
		pending = pending.Add(field(op))
	}
	projected := Round2(base.Add(pending))

	out := make([]ProjectionPoint, Months)
	for i := range out {
		out[i].Month = i + 1
		if i < elapsed {
			actual := closed[i]
			out[i].Actual = &actual
			continue
		}
		p := projected
		out[i].Projected = &p
	}
	return out
}

// MonthlyShare expresses each month's gross commission as a percentage of the
// year's gross commission. Every month is zero when the year has no gross.
func MonthlyShare(ops []entity.Operation, year int) MonthlySeries {
	gross := BucketByMonth(ops, year, FieldBrokerFee)
	total := gross.Total()
	out := NewMonthlySeries()
	for i, v := range gross {
		out[i] = Percentage(v, total)
	}
	return out
}
